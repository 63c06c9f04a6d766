// Package sqlite provides the SQLite-backed store for contact submissions
// received by the local endpoint.
package sqlite
