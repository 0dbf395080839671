package constants

// EntryStatus is the canonical status for payment-request entries.
type EntryStatus string

// Stable values (store these exact strings in DB).
const (
	EntryStatusDraft     EntryStatus = "DRAFT"     // saved but not submitted
	EntryStatusSubmitted EntryStatus = "SUBMITTED" // awaiting approval
	EntryStatusApproved  EntryStatus = "APPROVED"  // approved for payment
	EntryStatusRejected  EntryStatus = "REJECTED"  // sent back to requester
	EntryStatusPaid      EntryStatus = "PAID"      // terminal
)

// ValidEntryStatus reports whether s is one of the canonical statuses.
func ValidEntryStatus(s string) bool {
	switch EntryStatus(s) {
	case EntryStatusDraft, EntryStatusSubmitted, EntryStatusApproved, EntryStatusRejected, EntryStatusPaid:
		return true
	}
	return false
}
