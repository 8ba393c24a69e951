package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyGraph is returned when a payload has no nodes
	ErrEmptyGraph = errors.New("graph has no nodes")
	// ErrNotInitialized is returned by engine operations before Initialize
	ErrNotInitialized = errors.New("visualization not initialized")
	// ErrDisposed is returned by engine operations after Dispose
	ErrDisposed = errors.New("visualization disposed")
	// ErrUnknownNode is returned when an interaction names a node that is not in the graph
	ErrUnknownNode = errors.New("unknown node")
)

// IntegrityKind classifies a DataIntegrityError
type IntegrityKind string

const (
	DanglingReference IntegrityKind = "dangling_reference"
	DuplicateID       IntegrityKind = "duplicate_id"
	WordCount         IntegrityKind = "word_count"
)

// DataIntegrityError reports graph data that cannot be shown faithfully
type DataIntegrityError struct {
	Kind IntegrityKind
	Ref  string // offending node id, when there is one
	Role string // "source" or "target" for dangling references
	Link int    // link index for dangling references
	N    int    // observed word-node count for WordCount
}

func (e *DataIntegrityError) Error() string {
	switch e.Kind {
	case DanglingReference:
		return fmt.Sprintf("data integrity: link %d %s %q does not match any node", e.Link, e.Role, e.Ref)
	case DuplicateID:
		return fmt.Sprintf("data integrity: duplicate node id %q", e.Ref)
	case WordCount:
		return fmt.Sprintf("data integrity: expected exactly one word node, found %d", e.N)
	}
	return "data integrity: " + string(e.Kind)
}

// MountError reports a visualization container that does not exist
type MountError struct {
	Container string
}

func (e *MountError) Error() string {
	return fmt.Sprintf("mount: container %q does not exist", e.Container)
}
