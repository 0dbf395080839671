package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScanRecord is one audit row: the vendor's verbatim response plus the
// normalized record extracted from it. Kept so a reviewer can always compare
// what the form was filled with against what the vendor actually returned.
type ScanRecord struct {
	ID            uuid.UUID `json:"id"`
	FileName      string    `json:"file_name"`
	RawJSON       []byte    `json:"raw_json"`
	ExtractedJSON []byte    `json:"extracted_json"`
	Confidence    float64   `json:"confidence"`
	CreatedAt     time.Time `json:"created_at"`
}
