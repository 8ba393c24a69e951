// Package adapter converts raw etymology payloads into the validated graph model.
//
// The backend returns nodes plus a link list keyed either "links" or "edges".
// Adapt accepts both, validates structure with go-playground/validator, checks
// referential integrity and normalizes node properties into the tagged
// domain.Node variants.
//
// Referential problems (dangling link endpoints, duplicate ids, a missing or
// repeated word node) are reported as *domain.DataIntegrityError and are never
// repaired silently, since dropping an edge would misrepresent the etymology.
// Cosmetic problems (unknown category or frequency, out-of-range strength) are
// normalized instead: styling falls back to its default bucket downstream.
package adapter
