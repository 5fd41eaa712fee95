package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akshaydev2089/payslip-vault/dto"
)

// Normalizer converts a strategy's intermediate output into a canonical
// PayslipItem. Pure apart from the clock, which is injectable for tests.
type Normalizer struct {
	now func() time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// NewNormalizerWithClock pins the wall clock used for the creation timestamp
// and the fallback year.
func NewNormalizerWithClock(now func() time.Time) *Normalizer {
	return &Normalizer{now: now}
}

// Normalize builds exactly one PayslipItem from parsed data and the
// encrypted source bytes. Missing or malformed fields degrade through the
// documented fallback chain; Normalize never fails.
//
// Precondition: when TaxDetails or DSOPDetails are populated, the raw
// Deductions map already carries the matching tax and DSOP line items, so
// subtracting them here removes a double count rather than inventing one.
func (n *Normalizer) Normalize(data *dto.ParsedPayslipData, encrypted []byte) *dto.PayslipItem {
	now := n.now()
	month, year := n.derivePeriod(data.Metadata, now)

	credits := sumValues(data.Earnings)
	totalDeductions := sumValues(data.Deductions)
	tax := data.TaxDetails["incomeTax"]
	dsop := data.DSOPDetails["subscription"]

	return &dto.PayslipItem{
		ID:            uuid.New(),
		CreatedAt:     now,
		Month:         month,
		Year:          year,
		Credits:       credits,
		Debits:        totalDeductions - tax - dsop,
		DSOP:          dsop,
		Tax:           tax,
		Name:          data.PersonalInfo["name"],
		Location:      data.PersonalInfo["location"],
		AccountNumber: data.PersonalInfo["accountNumber"],
		PANNumber:     data.PersonalInfo["panNumber"],
		EncryptedData: encrypted,
		Earnings:      copyAmounts(data.Earnings),
		Deductions:    copyAmounts(data.Deductions),
	}
}

// derivePeriod resolves the statement period through a strict fallback
// chain: a well-formed statementDate wins, then explicit month/year fields,
// then "Unknown" and the current calendar year.
func (n *Normalizer) derivePeriod(metadata map[string]string, now time.Time) (string, int) {
	if raw, ok := metadata["statementDate"]; ok {
		if t, err := time.Parse("January 2006", strings.TrimSpace(raw)); err == nil {
			return t.Month().String(), t.Year()
		}
	}

	if month, ok := metadata["month"]; ok && month != "" {
		year := now.Year()
		if rawYear, ok := metadata["year"]; ok {
			if parsed, err := strconv.Atoi(strings.TrimSpace(rawYear)); err == nil {
				year = parsed
			}
		}
		return month, year
	}

	return "Unknown", now.Year()
}

// NormalizeKeys canonicalizes every earnings and deductions key through the
// abbreviation table, summing amounts when two original keys collapse to the
// same canonical name. Idempotent: canonical names map to themselves.
func (n *Normalizer) NormalizeKeys(item *dto.PayslipItem) {
	item.Earnings = canonicalizeAmounts(item.Earnings)
	item.Deductions = canonicalizeAmounts(item.Deductions)
}

func canonicalizeAmounts(amounts map[string]float64) map[string]float64 {
	normalized := make(map[string]float64, len(amounts))
	for name, amount := range amounts {
		normalized[CanonicalComponentName(name)] += amount
	}
	return normalized
}

// DisplayMetadata derives a flat, presentation-only mapping from the tax and
// DSOP sub-fields. Absent sub-fields are omitted, not defaulted to zero.
func DisplayMetadata(data *dto.ParsedPayslipData) map[string]string {
	display := make(map[string]string)

	for field, amount := range data.TaxDetails {
		display["incomeTax"+capitalize(field)] = wholeNumber(amount)
	}

	dsopFields := []struct {
		source string
		target string
	}{
		{"openingBalance", "dsopOpeningBalance"},
		{"subscription", "dsopSubscription"},
		{"miscAdjustment", "dsopMiscAdj"},
		{"withdrawal", "dsopWithdrawal"},
		{"refund", "dsopRefund"},
		{"closingBalance", "dsopClosingBalance"},
	}
	for _, f := range dsopFields {
		if amount, ok := data.DSOPDetails[f.source]; ok {
			display[f.target] = wholeNumber(amount)
		}
	}

	return display
}

func sumValues(amounts map[string]float64) float64 {
	var total float64
	for _, v := range amounts {
		total += v
	}
	return total
}

func copyAmounts(amounts map[string]float64) map[string]float64 {
	copied := make(map[string]float64, len(amounts))
	for k, v := range amounts {
		copied[k] = v
	}
	return copied
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func wholeNumber(amount float64) string {
	return fmt.Sprintf("%.0f", amount)
}
