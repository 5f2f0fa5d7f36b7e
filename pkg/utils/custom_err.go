package utils

import (
	"errors"
	"fmt"
)

// Machine-readable error codes surfaced to API clients.
const (
	CodeInvalidLatitude   = "INVALID_LATITUDE"
	CodeInvalidLongitude  = "INVALID_LONGITUDE"
	CodeMissingEndPoint   = "MISSING_END_POINT"
	CodeTimeLimitShort    = "TIME_LIMIT_TOO_SHORT"
	CodeTimeLimitLong     = "TIME_LIMIT_TOO_LONG"
	CodeInvalidTimeWindow = "INVALID_TIME_WINDOW"
	CodeNoSuitablePOIs    = "NO_SUITABLE_POIS"
	CodeExternalService   = "EXTERNAL_SERVICE_ERROR"
	CodeUnexpectedError   = "UNEXPECTED_ERROR"
)

// PlanningError carries a machine-readable code alongside the human message.
type PlanningError struct {
	Code    string
	Message string
	Err     error
}

func (e *PlanningError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PlanningError) Unwrap() error {
	return e.Err
}

func NewPlanningError(code, message string) *PlanningError {
	return &PlanningError{Code: code, Message: message}
}

func WrapPlanningError(code, message string, err error) *PlanningError {
	return &PlanningError{Code: code, Message: message, Err: err}
}

// AsPlanningError unwraps err into a *PlanningError when possible.
func AsPlanningError(err error) (*PlanningError, bool) {
	var pe *PlanningError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
