package errors

import (
	"context"
	"errors"
)

// As is errors.As narrowed to *Error
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is is errors.Is; two *Error values match on Code
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the Code carried by err. A nil error is OK, context
// cancellation and deadlines keep their own codes, and anything uncoded is
// Internal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var coded *Error
	switch {
	case errors.As(err, &coded):
		return coded.Code
	case errors.Is(err, context.Canceled):
		return CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return CodeDeadlineExceeded
	default:
		return CodeInternal
	}
}

// GetMeta returns the metadata of the outermost *Error in err
func GetMeta(err error) map[string]any {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Meta
	}
	return nil
}

// GetMessage returns the message shown to users: the outermost *Error's
// message, or err.Error() for uncoded errors
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var coded *Error
	if errors.As(err, &coded) {
		return coded.Message
	}
	return err.Error()
}

func hasCode(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// IsNotFound reports a missing record, battle or participant
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsInvalidArgument reports rejected input
func IsInvalidArgument(err error) bool { return hasCode(err, CodeInvalidArgument) }

// IsAlreadyExists reports a battle id collision
func IsAlreadyExists(err error) bool { return hasCode(err, CodeAlreadyExists) }

// IsUnavailable reports an unreachable storage backend
func IsUnavailable(err error) bool { return hasCode(err, CodeUnavailable) }

// IsInternal reports an unexpected failure
func IsInternal(err error) bool { return hasCode(err, CodeInternal) }

// IsDataLoss reports a stored document that no longer decodes
func IsDataLoss(err error) bool { return hasCode(err, CodeDataLoss) }
