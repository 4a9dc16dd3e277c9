package service

import "errors"

// Kind classifies a rejected request.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
)

// Error is returned for any request rejected before mutation.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrUnknownRater    = &Error{Kind: KindNotFound, Message: "rater does not exist"}
	ErrUnknownTarget   = &Error{Kind: KindNotFound, Message: "rated member does not exist"}
	ErrUnknownMember   = &Error{Kind: KindNotFound, Message: "member does not exist"}
	ErrSelfRating      = &Error{Kind: KindValidation, Message: "you cannot rate yourself"}
	ErrScoreOutOfRange = &Error{Kind: KindValidation, Message: "score must be an integer between 1 and 5"}
	ErrNoFile          = &Error{Kind: KindValidation, Message: "no file uploaded"}
	ErrUnsupportedType = &Error{Kind: KindValidation, Message: "unsupported file type"}
	ErrEmptyMessage    = &Error{Kind: KindValidation, Message: "message text is required"}
)

func kindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsValidation reports whether err is a bad-input rejection.
func IsValidation(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindValidation
}

// IsNotFound reports whether err names a member that does not exist.
func IsNotFound(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindNotFound
}

// IsRejected reports whether err is any service rejection, as opposed to an
// internal failure.
func IsRejected(err error) bool {
	_, ok := kindOf(err)
	return ok
}
