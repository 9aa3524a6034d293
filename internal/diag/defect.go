package diag

import (
	"errors"
	"fmt"
)

// Defect is the panic value used for programming errors. Pass runners
// recover widget panics into errors but always re-raise a *Defect.
type Defect struct {
	Err error
}

func (d *Defect) Error() string { return "arbor defect: " + d.Err.Error() }

func (d *Defect) Unwrap() error { return d.Err }

// Assertions reports whether defects abort. It is false only in builds
// tagged arbor_release.
func Assertions() bool { return assertions }

// Defectf reports a programming error. With assertions enabled it panics
// with a *Defect; otherwise the defect is logged and execution continues,
// leaving the caller to degrade gracefully.
func Defectf(format string, args ...any) {
	err := fmt.Errorf(format, args...)
	if assertions {
		panic(&Defect{Err: err})
	}
	Logger().Error("defect", "err", err)
}

// Abortf reports a defect that would corrupt the tree if execution went
// on. It panics regardless of build tags.
func Abortf(format string, args ...any) {
	panic(&Defect{Err: fmt.Errorf(format, args...)})
}

// IsDefect reports whether v (typically a recovered panic value) is a
// defect.
func IsDefect(v any) bool {
	err, ok := v.(error)
	if !ok {
		return false
	}
	var d *Defect
	return errors.As(err, &d)
}
