// Package harvest retrieves external job listings from public job boards.
package harvest

import (
	"context"
	"fmt"

	"github.com/jonathan/careerconnect/internal/types"
)

// Harvester searches one external board for listings matching a keyword
// and location.
type Harvester interface {
	// Search returns listings for a keyword and location. Implementations
	// return an empty slice (not an error) when the board simply has no
	// matches; errors are reserved for transport and parse failures.
	Search(ctx context.Context, keyword, location string) ([]types.JobRecord, error)

	// Name identifies the provider, e.g. "LinkedIn".
	Name() string
}

// Error represents a harvester failure for a specific keyword.
type Error struct {
	Provider string
	Keyword  string
	Cause    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("harvest %s for %q failed: %v", e.Provider, e.Keyword, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
