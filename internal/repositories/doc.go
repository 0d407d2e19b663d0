// Package repositories persists the sync slot behind the [SyncStore] interface.
//
// Key Implementations:
//   - [MemorySyncStore] : mutex-guarded slot, the default backend
//   - [SQLiteSyncStore] : one-row sync_slot table created by the embedded migrations
//
// Both backends serialize writers and keep only the last document stored.
// [NewSyncStore] picks a backend from the [sync] config section.
package repositories
