// Package pcda parses payslips issued by the Principal Controller of
// Defence Accounts. These statements carry EARNINGS/DEDUCTIONS tables with
// abbreviated component codes, plus DSOP fund and income-tax detail blocks.
package pcda

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/akshaydev2089/payslip-vault/dto"
	"github.com/akshaydev2089/payslip-vault/parser"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

func (p *Parser) Name() string { return "pcda" }

var (
	markerRegex    = regexp.MustCompile(`(?i)(PCDA|PRINCIPAL\s+CONTROLLER\s+OF\s+DEFENCE\s+ACCOUNTS|DEFENCE\s+ACCOUNTS)`)
	statementRegex = regexp.MustCompile(`(?i)STATEMENT\s+OF\s+ACCOUNT\s+FOR\s+([A-Za-z]+)[\s,]+(\d{4})`)
	numericDate    = regexp.MustCompile(`(?i)STATEMENT\s+OF\s+ACCOUNT\s+FOR\s+(\d{1,2})/(\d{4})`)
	itemRegex      = regexp.MustCompile(`^([A-Z][A-Z0-9/\-]*(?:\s[A-Z0-9/\-]+)*)\s+([0-9,]+(?:\.\d{1,2})?)$`)
	nameRegex      = regexp.MustCompile(`(?i)Name\s*:\s*([A-Za-z .]+)`)
	accountRegex   = regexp.MustCompile(`(?i)A/?C\s*No[.:\s]+([0-9/A-Z]+)`)
	panRegex       = regexp.MustCompile(`(?i)PAN\s*(?:No)?[.:\s]+([A-Z]{5}[0-9]{4}[A-Z])`)
	locationRegex  = regexp.MustCompile(`(?i)Location\s*:\s*([A-Za-z ]+)`)
)

type section int

const (
	sectionNone section = iota
	sectionEarnings
	sectionDeductions
	sectionDSOP
	sectionTax
)

// Parse extracts structured data from a PCDA statement. Text without the
// PCDA letterhead markers is rejected with parser.ErrNoMatch.
func (p *Parser) Parse(text string) (*dto.ParsedPayslipData, error) {
	if !markerRegex.MatchString(text) {
		return nil, parser.ErrNoMatch
	}

	data := dto.NewParsedPayslipData()
	p.parsePeriod(text, data)
	p.parsePersonalInfo(text, data)

	current := sectionNone
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if next, ok := sectionFor(line); ok {
			current = next
			continue
		}

		switch current {
		case sectionEarnings:
			if code, amount, ok := parseItem(line); ok {
				data.Earnings[code] = amount
			}
		case sectionDeductions:
			if code, amount, ok := parseItem(line); ok {
				data.Deductions[code] = amount
				// PCDA lists tax and DSOP as deduction line items; mirror
				// them into the detail maps the normalizer reconciles from.
				switch strings.ToUpper(code) {
				case "ITAX", "INCOME TAX", "IT":
					data.TaxDetails["incomeTax"] = amount
				case "DSOP", "DSOP FUND", "DSOP SUBN":
					data.DSOPDetails["subscription"] = amount
				}
			}
		case sectionDSOP:
			p.parseDSOPLine(line, data)
		case sectionTax:
			p.parseTaxLine(line, data)
		}
	}

	return data, nil
}

func sectionFor(line string) (section, bool) {
	upper := strings.ToUpper(line)
	switch {
	case upper == "EARNINGS" || upper == "CREDITS" || upper == "CREDIT SIDE" ||
		strings.HasPrefix(upper, "EARNINGS ("):
		return sectionEarnings, true
	case upper == "DEDUCTIONS" || upper == "DEBITS" || upper == "DEBIT SIDE" ||
		strings.HasPrefix(upper, "DEDUCTIONS ("):
		return sectionDeductions, true
	case strings.HasPrefix(upper, "DSOP FUND"):
		return sectionDSOP, true
	case strings.HasPrefix(upper, "INCOME TAX DETAILS") || strings.HasPrefix(upper, "IT DETAILS"):
		return sectionTax, true
	}
	return sectionNone, false
}

func (p *Parser) parsePeriod(text string, data *dto.ParsedPayslipData) {
	if m := statementRegex.FindStringSubmatch(text); len(m) > 2 {
		data.Metadata["statementDate"] = normalizeMonthName(m[1]) + " " + m[2]
		return
	}
	if m := numericDate.FindStringSubmatch(text); len(m) > 2 {
		if monthNum, err := strconv.Atoi(m[1]); err == nil && monthNum >= 1 && monthNum <= 12 {
			data.Metadata["month"] = time.Month(monthNum).String()
			data.Metadata["year"] = m[2]
		}
	}
}

func (p *Parser) parsePersonalInfo(text string, data *dto.ParsedPayslipData) {
	if m := nameRegex.FindStringSubmatch(text); len(m) > 1 {
		data.PersonalInfo["name"] = strings.TrimSpace(m[1])
	}
	if m := accountRegex.FindStringSubmatch(text); len(m) > 1 {
		data.PersonalInfo["accountNumber"] = strings.TrimSpace(m[1])
	}
	if m := panRegex.FindStringSubmatch(text); len(m) > 1 {
		data.PersonalInfo["panNumber"] = strings.TrimSpace(m[1])
	}
	if m := locationRegex.FindStringSubmatch(text); len(m) > 1 {
		data.PersonalInfo["location"] = strings.TrimSpace(m[1])
	}
}

var dsopFields = []struct {
	label string
	field string
}{
	{"OPENING BALANCE", "openingBalance"},
	{"SUBSCRIPTION", "subscription"},
	{"MISC ADJ", "miscAdjustment"},
	{"WITHDRAWAL", "withdrawal"},
	{"REFUND", "refund"},
	{"CLOSING BALANCE", "closingBalance"},
}

func (p *Parser) parseDSOPLine(line string, data *dto.ParsedPayslipData) {
	upper := strings.ToUpper(line)
	for _, f := range dsopFields {
		if strings.HasPrefix(upper, f.label) {
			if amount, ok := trailingAmount(line); ok {
				data.DSOPDetails[f.field] = amount
			}
			return
		}
	}
}

func (p *Parser) parseTaxLine(line string, data *dto.ParsedPayslipData) {
	upper := strings.ToUpper(line)
	labels := []struct {
		label string
		field string
	}{
		{"INCOME TAX DEDUCTED", "incomeTax"},
		{"INCOME TAX", "incomeTax"},
		{"ED. CESS", "edCess"},
		{"EDUCATION CESS", "edCess"},
		{"SURCHARGE", "surcharge"},
	}
	for _, l := range labels {
		if strings.HasPrefix(upper, l.label) {
			if amount, ok := trailingAmount(line); ok {
				data.TaxDetails[l.field] = amount
			}
			return
		}
	}
}

// parseItem splits a "CODE AMOUNT" table row.
func parseItem(line string) (string, float64, bool) {
	m := itemRegex.FindStringSubmatch(line)
	if len(m) < 3 {
		return "", 0, false
	}
	amount, err := parseAmount(m[2])
	if err != nil {
		return "", 0, false
	}
	return strings.TrimSpace(m[1]), amount, true
}

// trailingAmount grabs the last numeric token on a labelled line.
func trailingAmount(line string) (float64, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, false
	}
	amount, err := parseAmount(fields[len(fields)-1])
	if err != nil {
		return 0, false
	}
	return amount, true
}

func parseAmount(raw string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
}

func normalizeMonthName(raw string) string {
	if t, err := time.Parse("January", raw); err == nil {
		return t.Month().String()
	}
	if t, err := time.Parse("Jan", raw); err == nil {
		return t.Month().String()
	}
	return strings.ToUpper(raw[:1]) + strings.ToLower(raw[1:])
}
