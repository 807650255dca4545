// Package postgres implements the store interfaces using a PostgreSQL
// database as the storage backend. Profiles and concepts are persisted
// as JSONB blobs addressed by fixed string keys, matching the durable
// key-value contract of the store boundary.
package postgres
