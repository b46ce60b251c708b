// Package history records completed conversions in SQLite.
//
// Each CLI run writes one row per converted document, tagged with the run id
// that also appears in every log line of that run. The database is a
// convenience log rather than an archive: schema changes bump schemaVersion
// and users clear the database to adopt the new schema.
package history
