package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// UploadResponse is returned after a payslip runs the full pipeline.
type UploadResponse struct {
	Payslip     *PayslipItem      `json:"payslip"`
	Strategy    string            `json:"strategy,omitempty"`
	Breakdown   map[string]string `json:"breakdown,omitempty"`
	ProcessedAt string            `json:"processed_at"`
}

// ListResponse wraps stored payslips, newest first.
type ListResponse struct {
	Payslips []*PayslipItem `json:"payslips"`
	Count    int            `json:"count"`
}

// StrategiesResponse lists the registered parsing strategies in priority order.
type StrategiesResponse struct {
	Strategies []string `json:"strategies"`
}
