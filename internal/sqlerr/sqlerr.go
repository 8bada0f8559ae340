// Package sqlerr handles database driver errors.
//
// It normalizes the errors of both supported drivers (PostgreSQL via pgx,
// SQLite via go-sqlite3) and the ORM into a single Error type, and converts
// them into user-friendly HTTP errors (e.g. a foreign key violation becomes
// a "Bad Request").
package sqlerr
