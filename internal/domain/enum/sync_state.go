package enum

// SyncState describes a sale's standing against the Zoho Books ledger.
//
// Unsynced is the initial state. A successful push moves the sale to Synced
// (terminal). A failed push moves it to Failed, which is terminal unless an
// operator retries it.
type SyncState string

const (
	SyncStateUnsynced SyncState = "unsynced"
	SyncStateSynced   SyncState = "synced"
	SyncStateFailed   SyncState = "failed"
)
