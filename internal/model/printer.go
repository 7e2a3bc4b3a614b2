package model

// Printer represents a printer model entry covering one or more physical
// units. Assigned and Available are derived from the assignments table and
// never stored.
type Printer struct {
	ID        int64  `json:"id"`
	Model     string `json:"model"`
	Serial    string `json:"serial,omitempty"`
	Quantity  int    `json:"quantity"`
	Status    string `json:"status"`
	Note      string `json:"note,omitempty"`
	Assigned  int    `json:"assigned"`
	Available int    `json:"available"`
}

// Printer statuses.
const (
	PrinterStatusActive      = "active"
	PrinterStatusInService   = "in_service"
	PrinterStatusForDisposal = "for_disposal"
)

// ValidPrinterStatus reports whether s is a known printer status.
func ValidPrinterStatus(s string) bool {
	return s == PrinterStatusActive || s == PrinterStatusInService || s == PrinterStatusForDisposal
}
