// Package catalog provides read and mutation access to the DJ catalog
// database backed by SQLite.
//
// The Store is the only component that touches the database file. It takes an
// exclusive advisory lock for the life of the handle, so a run owns the
// catalog outright; a second writer is refused at open time. Mutations are
// per-entry and verified to affect exactly one row, and Backup snapshots the
// whole database with VACUUM INTO before the first mutation of an apply run.
//
// Streaming entries are identified textually: an empty backing path or a path
// naming a known streaming provider.
package catalog
