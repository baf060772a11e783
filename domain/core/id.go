package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	// AnalysisID identifies one analysis invocation and its result graph.
	AnalysisID ID
	// FileID is the opaque identifier persistence collaborators key results by.
	FileID ID
)

func (id AnalysisID) String() string { return ID(id).String() }
func (id FileID) String() string     { return ID(id).String() }

// NewAnalysisID mints an identifier for a single analysis invocation.
func NewAnalysisID() AnalysisID {
	return AnalysisID(NewID())
}

// ParseFileID parses a string into a FileID.
func ParseFileID(s string) (FileID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("file ID cannot be empty")
	}
	return FileID(s), nil
}
