// errors.go
package provision

import (
	"errors"
	"fmt"

	"github.com/postcumer/personal-scripts/pkg/pkgmgr"
)

var (
	// ErrDeclined indicates the operator refused the initial confirmation.
	ErrDeclined = errors.New("provisioning declined")

	// ErrUnsupportedDistro indicates no package manager is known for the
	// detected distribution. Re-exported so callers only import this package.
	ErrUnsupportedDistro = pkgmgr.ErrUnsupported
)

// Error wraps a step failure with the step that produced it.
type Error struct {
	Step string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
