package dto

import (
	"time"

	"github.com/google/uuid"
)

// ParsedPayslipData is the intermediate output of a parsing strategy,
// before normalization. Monetary maps carry amounts in a single implicit
// unit; string maps carry free-form extracted fields.
type ParsedPayslipData struct {
	Earnings     map[string]float64 `json:"earnings"`
	Deductions   map[string]float64 `json:"deductions"`
	TaxDetails   map[string]float64 `json:"tax_details"`
	DSOPDetails  map[string]float64 `json:"dsop_details"`
	PersonalInfo map[string]string  `json:"personal_info"`
	Metadata     map[string]string  `json:"metadata"`
}

// NewParsedPayslipData returns an empty intermediate with all maps allocated,
// so strategies can fill fields without nil checks.
func NewParsedPayslipData() *ParsedPayslipData {
	return &ParsedPayslipData{
		Earnings:     make(map[string]float64),
		Deductions:   make(map[string]float64),
		TaxDetails:   make(map[string]float64),
		DSOPDetails:  make(map[string]float64),
		PersonalInfo: make(map[string]string),
		Metadata:     make(map[string]string),
	}
}

// PayslipItem is the canonical payslip record produced by the normalizer
// and consumed by the store and the API layer.
//
// Invariants: Credits == sum(Earnings), and Debits + Tax + DSOP equals the
// sum of the raw deductions the strategy extracted (Debits is derived by
// subtracting Tax and DSOP from that total).
type PayslipItem struct {
	ID            uuid.UUID          `json:"id"`
	CreatedAt     time.Time          `json:"created_at"`
	Month         string             `json:"month"`
	Year          int                `json:"year"`
	Credits       float64            `json:"credits"`
	Debits        float64            `json:"debits"`
	DSOP          float64            `json:"dsop"`
	Tax           float64            `json:"tax"`
	Name          string             `json:"name"`
	Location      string             `json:"location"`
	AccountNumber string             `json:"account_number"`
	PANNumber     string             `json:"pan_number"`
	EncryptedData []byte             `json:"-"`
	Earnings      map[string]float64 `json:"earnings"`
	Deductions    map[string]float64 `json:"deductions"`
}

// NetRemittance is what actually reached the account for the period.
func (p *PayslipItem) NetRemittance() float64 {
	return p.Credits - p.Debits - p.DSOP - p.Tax
}
