// Package generic is the last-resort parsing strategy: a keyword scan over
// labelled amount lines, for payslips that match no known layout.
package generic

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/akshaydev2089/payslip-vault/dto"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

func (p *Parser) Name() string { return "generic" }

var (
	amountLineRegex = regexp.MustCompile(`^([A-Za-z][A-Za-z .()/&-]*?)\s*[:\s]\s*(?:Rs\.?|INR|₹)?\s*([0-9][0-9,]*(?:\.\d{1,2})?)$`)
	nameRegex       = regexp.MustCompile(`(?i)Name\s*[:\-]\s*([A-Za-z .]+)`)
	panRegex        = regexp.MustCompile(`(?i)PAN\s*(?:No)?[.:\s]+([A-Z]{5}[0-9]{4}[A-Z])`)
	monthYearRegex  = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December)[\s,]+(\d{4})\b`)
	monthTailRegex  = regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)$`)
)

var earningKeywords = []string{"pay", "salary", "wage", "allowance", "bonus", "arrears", "incentive", "stipend"}
var taxKeywords = []string{"income tax", "itax", "tds", "tax deducted"}
var fundKeywords = []string{"dsop", "provident", "pf", "epf"}
var deductionKeywords = []string{"deduction", "recovery", "fund", "fee", "charges", "loan", "insurance", "advance", "tax", "mess", "canteen"}

// Parse scans every line for a "label amount" shape and classifies the label
// by keyword. It never rejects outright; a scan that finds nothing fails the
// registry's validity check instead.
func (p *Parser) Parse(text string) (*dto.ParsedPayslipData, error) {
	data := dto.NewParsedPayslipData()

	if m := monthYearRegex.FindStringSubmatch(text); len(m) > 2 {
		data.Metadata["statementDate"] = strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:]) + " " + m[2]
	}
	if m := nameRegex.FindStringSubmatch(text); len(m) > 1 {
		data.PersonalInfo["name"] = strings.TrimSpace(m[1])
	}
	if m := panRegex.FindStringSubmatch(text); len(m) > 1 {
		data.PersonalInfo["panNumber"] = strings.TrimSpace(m[1])
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		m := amountLineRegex.FindStringSubmatch(line)
		if len(m) < 3 {
			continue
		}
		label := strings.TrimSpace(m[1])
		amount, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
		if err != nil || isSummaryLabel(label) {
			continue
		}
		// "Pay Slip January 2025" is a heading, not an amount line
		if monthTailRegex.MatchString(label) && amount >= 1900 && amount <= 2100 {
			continue
		}

		lower := strings.ToLower(label)
		switch {
		case containsAny(lower, taxKeywords):
			data.Deductions[label] = amount
			data.TaxDetails["incomeTax"] = amount
		case containsAny(lower, fundKeywords):
			data.Deductions[label] = amount
			data.DSOPDetails["subscription"] = amount
		case containsAny(lower, deductionKeywords):
			data.Deductions[label] = amount
		case containsAny(lower, earningKeywords):
			data.Earnings[label] = amount
		}
	}

	return data, nil
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func isSummaryLabel(label string) bool {
	lower := strings.ToLower(label)
	return strings.HasPrefix(lower, "total") || strings.HasPrefix(lower, "gross") ||
		strings.HasPrefix(lower, "net")
}
