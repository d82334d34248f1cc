package damast

import "fmt"

// Validation reason codes surfaced to callers on rejected operations.
// Validation failures never mutate billet state.
const (
	CodeBadDimension  = "bad_dimension"
	CodeEmptyStack    = "empty_stack"
	CodeBadThickness  = "bad_thickness"
	CodeBadMaterial   = "bad_material"
	CodeBadResolution = "bad_resolution"
	CodeBadTargetSize = "bad_target_size"
	CodeBadHeatCount  = "bad_heat_count"
	CodeBadChamfer    = "bad_chamfer"
	CodeBadAngle      = "bad_angle"
	CodeBadFactor     = "bad_factor"
	CodeBadRadius     = "bad_radius"
	CodeNotForged     = "not_forged"
)

// ValidationError rejects an operation before any billet mutation.
// Code is a stable machine readable reason.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return "damast: " + e.Message + " (" + e.Code + ")"
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(code, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NumericalError aborts an operation whose computed geometry failed
// validation. The billet is left exactly as it was before the call.
type NumericalError struct {
	Op  string
	Err error
}

func (e *NumericalError) Error() string {
	return "damast: " + e.Op + " aborted: " + e.Err.Error()
}

func (e *NumericalError) Unwrap() error { return e.Err }
