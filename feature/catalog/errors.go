package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the key (or prefix) is not in the catalog.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates an insert hit an existing composite key.
	ErrAlreadyExists = errors.New("record already exists")
)

// AmbiguousKeyError is returned when a partial key resolves to more than one
// office. It is surfaced distinctly so callers never collapse it to NotFound
// or an arbitrary pick.
type AmbiguousKeyError struct {
	StateToken      string
	AreaServedToken string
	ServiceToken    string
	// OfficeTokens lists every office offering the service, sorted.
	OfficeTokens []string
}

func (e *AmbiguousKeyError) Error() string {
	return fmt.Sprintf("ambiguous key %s/%s/%s: offered by offices %s",
		e.StateToken, e.AreaServedToken, e.ServiceToken, strings.Join(e.OfficeTokens, ", "))
}
