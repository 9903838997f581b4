package constants

// RecordStatus is the canonical status for rows in the invoices table.
type RecordStatus string

// Stable values (store these exact strings in DB).
const (
	// StatusProcessed marks a record whose document was fully extracted and
	// persisted. The store is append-only, so this is currently the only
	// terminal state a row can carry.
	StatusProcessed RecordStatus = "PROCESSED"
)
