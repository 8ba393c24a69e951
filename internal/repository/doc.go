// Package repository defines the data access interfaces for rhiza.
//
// The only persisted data is the payload cache: graph payloads fetched from
// the etymology backend, kept for a bounded time so repeated lookups of the
// same word do not hit the backend again. The implementation lives in the
// sqlite subpackage and runs in memory unless a file path is configured.
package repository
