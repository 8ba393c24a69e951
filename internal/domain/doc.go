// Package domain defines the core domain types for the rhiza etymology graph
// visualization.
//
// This package contains the entities and value objects shared by the adapter,
// layout engine, renderers and HTTP layer.
//
// # Core Types
//
// Node represents either the searched English word, a Greek root, or a related
// English word sharing a root. Root nodes carry RootDetails; word-like nodes carry
// WordDetails. Only the fields relevant to a variant are present.
//
// Link represents a derivation relationship between two nodes, weighted by an
// optional strength in [0,1].
//
// Graph is a validated node and link set for one visualization request.
//
// Payload is the raw backend response shape before validation.
//
// # Errors
//
// DataIntegrityError reports graph data that would misrepresent the domain
// (dangling references, duplicate ids, wrong number of word nodes).
//
// MountError reports a missing visualization container.
//
// # Design Principles
//
// - No database or external dependencies
// - Absent optional fields are zero values, defaulted explicitly by consumers
// - Rich type system with meaningful constants and enumerations
package domain
