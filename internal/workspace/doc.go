// Package workspace persists the operator session in SQLite between CLI
// invocations and journals remote export runs.
//
// The Workspace owns the database connection, schema initialization and a
// file lock that serializes mutating commands across processes. Update loads
// the session, hands it to the caller and writes it back in one transaction
// while the lock is held; View loads under a shared lock.
//
// Schema changes bump schemaVersion in schema.go; operators delete the
// workspace database to adopt the new schema.
package workspace
