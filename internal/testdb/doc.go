// Package testdb provides helpers for tests that run against a real
// Postgres database. They are compiled only with the integration build tag
// and skip the calling test when no database URL is configured.
package testdb
