// Package results carries service operation outcomes to the handler layer.
// An operation either succeeds with a success payload or fails with a typed
// failure payload (expected domain failure). Infrastructure problems travel
// as plain errors alongside the result; handlers map the two payload sides
// onto success/failure topics, and errors propagate to nack the message.
package results

// OperationResult holds either a success or a failure payload. Exactly one
// side is set on a populated result; the zero value means "nothing to
// report" (typically alongside a non-nil error).
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// SuccessResult builds a success-side result.
func SuccessResult[S any, F any](success S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &success}
}

// FailureResult builds a failure-side result.
func FailureResult[S any, F any](failure F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &failure}
}

// IsSuccess reports whether the success side is populated.
func (r OperationResult[S, F]) IsSuccess() bool {
	return r.Success != nil
}

// IsFailure reports whether the failure side is populated.
func (r OperationResult[S, F]) IsFailure() bool {
	return r.Failure != nil
}
