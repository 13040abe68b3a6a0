package errors

// Code classifies an error; every Code maps to one gRPC status code
type Code string

const (
	CodeOK               Code = "OK"
	CodeCanceled         Code = "CANCELED"
	CodeDeadlineExceeded Code = "DEADLINE_EXCEEDED"

	// CodeInvalidArgument covers bad names, unknown categories and missing
	// battle ids
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	// CodeNotFound is an absent record, battle or roster entry
	CodeNotFound Code = "NOT_FOUND"
	// CodeAlreadyExists is a battle id collision
	CodeAlreadyExists Code = "ALREADY_EXISTS"
	// CodeFailedPrecondition is a battle operation out of phase
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeUnimplemented      Code = "UNIMPLEMENTED"
	CodeInternal           Code = "INTERNAL"
	// CodeUnavailable is a storage backend that cannot be reached
	CodeUnavailable Code = "UNAVAILABLE"
	// CodeDataLoss is a stored document that no longer decodes
	CodeDataLoss Code = "DATA_LOSS"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}
