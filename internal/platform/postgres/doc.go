// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. It handles
// query execution, mapping between domain entities and database records,
// and the embedded goose migrations that create the schema.
//
// Stores accept a store.DBTX so the same code runs against a *sql.DB or,
// through WithTx, inside a caller-managed transaction. Connections are
// opened with the pgx stdlib driver registered under the name "pgx".
package postgres
