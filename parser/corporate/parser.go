// Package corporate parses company payslips laid out as labelled
// Earnings/Deductions tables with full component names.
package corporate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/akshaydev2089/payslip-vault/dto"
	"github.com/akshaydev2089/payslip-vault/parser"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

func (p *Parser) Name() string { return "corporate" }

var (
	slipRegex      = regexp.MustCompile(`(?i)(pay\s*slip|salary\s*slip|salary\s+statement)`)
	periodRegex    = regexp.MustCompile(`(?i)(?:pay\s*period|salary\s+for(?:\s+the)?\s+month\s+of|for\s+the\s+month\s+of)\s*[:\-]?\s*([A-Za-z]+)[\s,]+(\d{4})`)
	itemRegex      = regexp.MustCompile(`^([A-Za-z][A-Za-z .()/&-]*?)\s{2,}(?:Rs\.?|INR|₹)?\s*([0-9,]+(?:\.\d{1,2})?)$`)
	itemColonRegex = regexp.MustCompile(`^([A-Za-z][A-Za-z .()/&-]*?)\s*:\s*(?:Rs\.?|INR|₹)?\s*([0-9,]+(?:\.\d{1,2})?)$`)
	nameRegex      = regexp.MustCompile(`(?i)Employee\s*Name\s*[:\-]\s*([A-Za-z .]+)`)
	locationRegex  = regexp.MustCompile(`(?i)(?:Location|Work\s*Location|Branch)\s*[:\-]\s*([A-Za-z ,]+)`)
	accountRegex   = regexp.MustCompile(`(?i)(?:Bank\s*)?A(?:ccount|/?c)\s*No[.:\s]+([0-9Xx]{4,18})`)
	panRegex       = regexp.MustCompile(`(?i)PAN\s*(?:No)?[.:\s]+([A-Z]{5}[0-9]{4}[A-Z])`)
)

// Parse extracts structured data from a corporate payslip. Text without a
// payslip heading and both section headers is rejected with parser.ErrNoMatch.
func (p *Parser) Parse(text string) (*dto.ParsedPayslipData, error) {
	lower := strings.ToLower(text)
	if !slipRegex.MatchString(text) ||
		!strings.Contains(lower, "earnings") || !strings.Contains(lower, "deductions") {
		return nil, parser.ErrNoMatch
	}

	data := dto.NewParsedPayslipData()

	if m := periodRegex.FindStringSubmatch(text); len(m) > 2 {
		data.Metadata["statementDate"] = strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:]) + " " + m[2]
	}
	if m := nameRegex.FindStringSubmatch(text); len(m) > 1 {
		data.PersonalInfo["name"] = strings.TrimSpace(m[1])
	}
	if m := locationRegex.FindStringSubmatch(text); len(m) > 1 {
		data.PersonalInfo["location"] = strings.TrimSpace(m[1])
	}
	if m := accountRegex.FindStringSubmatch(text); len(m) > 1 {
		data.PersonalInfo["accountNumber"] = strings.TrimSpace(m[1])
	}
	if m := panRegex.FindStringSubmatch(text); len(m) > 1 {
		data.PersonalInfo["panNumber"] = strings.TrimSpace(m[1])
	}

	inEarnings, inDeductions := false, false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch strings.ToLower(strings.TrimRight(line, ": ")) {
		case "earnings", "income", "payments":
			inEarnings, inDeductions = true, false
			continue
		case "deductions", "recoveries":
			inEarnings, inDeductions = false, true
			continue
		case "net pay", "summary", "totals":
			inEarnings, inDeductions = false, false
			continue
		}

		label, amount, ok := parseItem(line)
		if !ok || isTotalRow(label) {
			continue
		}

		switch {
		case inEarnings:
			data.Earnings[label] = amount
		case inDeductions:
			data.Deductions[label] = amount
			switch {
			case isTaxLabel(label):
				data.TaxDetails["incomeTax"] = amount
			case isProvidentFundLabel(label):
				data.DSOPDetails["subscription"] = amount
			}
		}
	}

	return data, nil
}

func parseItem(line string) (string, float64, bool) {
	m := itemRegex.FindStringSubmatch(line)
	if len(m) < 3 {
		m = itemColonRegex.FindStringSubmatch(line)
	}
	if len(m) < 3 {
		return "", 0, false
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
	if err != nil {
		return "", 0, false
	}
	return strings.TrimSpace(m[1]), amount, true
}

func isTotalRow(label string) bool {
	lower := strings.ToLower(label)
	return strings.HasPrefix(lower, "total") || strings.HasPrefix(lower, "gross") ||
		strings.HasPrefix(lower, "net")
}

func isTaxLabel(label string) bool {
	lower := strings.ToLower(label)
	if strings.Contains(lower, "professional tax") {
		return false
	}
	return strings.Contains(lower, "income tax") || strings.Contains(lower, "tds") ||
		strings.Contains(lower, "tax deducted") || lower == "tax"
}

func isProvidentFundLabel(label string) bool {
	lower := strings.ToLower(label)
	return strings.Contains(lower, "provident") || lower == "pf" || lower == "epf" ||
		strings.Contains(lower, "dsop")
}
