package entity

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Masanori-Bessho/kaikei-poc-repo/constants"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/ocrscan"
)

// Entry is a payment-request entry for data transfer between layers. Invoice
// dates stay as the strings the OCR/form produced; only bookkeeping
// timestamps are time.Time.
type Entry struct {
	ID                   uuid.UUID             `json:"id"`
	SlipTitle            string                `json:"slip_title"`
	PayeeName            string                `json:"payee_name"`
	InvoiceNumber        string                `json:"invoice_number,omitempty"`
	TransactionDate      string                `json:"transaction_date,omitempty"`
	OccurrenceMonthStart string                `json:"occurrence_month_start,omitempty"`
	OccurrenceMonthEnd   string                `json:"occurrence_month_end,omitempty"`
	PaymentDate          string                `json:"payment_date,omitempty"`
	StaffName            string                `json:"staff_name,omitempty"`
	PaymentMethod        string                `json:"payment_method,omitempty"`
	Amount               float64               `json:"amount"`
	TaxAmount            float64               `json:"tax_amount"`
	TotalAmount          float64               `json:"total_amount"`
	Status               constants.EntryStatus `json:"status"`
	LineItems            []ocrscan.LineItem    `json:"line_items,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

// TaxRate maps a consumption-tax category label to its rate. Unknown and
// exempt categories are untaxed.
func TaxRate(category string) float64 {
	switch category {
	case "課仕8%", "課仕8%（軽減）":
		return 0.08
	case "課仕10%":
		return 0.10
	case "課仕5%":
		return 0.05
	default:
		return 0
	}
}

// ComputeTax returns the consumption tax for a user-entered amount, floored
// to the yen. inclusive distinguishes 内税 (tax already inside the amount)
// from 外税 (tax on top).
func ComputeTax(amount, rate float64, inclusive bool) float64 {
	if rate <= 0 || amount <= 0 {
		return 0
	}
	if inclusive {
		return math.Floor(amount * rate / (1 + rate))
	}
	return math.Floor(amount * rate)
}
