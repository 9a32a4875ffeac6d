package entity

import "time"

// SyncSummary aggregates the sync standing of the sales in a snapshot.
type SyncSummary struct {
	Total    int `json:"total"`
	Synced   int `json:"synced"`
	Failed   int `json:"failed"`
	NoZohoID int `json:"no_zoho_id"`
}

// SyncCustomer is the customer slice of a sync row, carrying only what the
// reconciliation screen needs.
type SyncCustomer struct {
	Name      string `json:"name"`
	HasZohoID bool   `json:"has_zoho_id"`
}

// SaleSyncRow is one sale's sync standing against the Zoho Books ledger.
// CanRetry is true only for failed rows whose customer has a ledger identity.
type SaleSyncRow struct {
	SaleID             uint          `json:"sale_id"`
	Total              float64       `json:"total"`
	SyncedToZoho       bool          `json:"synced_to_zoho"`
	SyncError          *string       `json:"sync_error,omitempty"`
	Customer           *SyncCustomer `json:"customer,omitempty"`
	SalesReceiptNumber *string       `json:"sales_receipt_number,omitempty"`
	CanRetry           bool          `json:"can_retry"`
}

// SyncStatus is a point-in-time snapshot of recent sales' sync standing.
// It is replaced wholesale on every refresh; rows are never merged into a
// previous snapshot.
type SyncStatus struct {
	Summary   SyncSummary   `json:"summary"`
	Sales     []SaleSyncRow `json:"sales"`
	FetchedAt time.Time     `json:"fetched_at"`
}
