package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyWord       = errors.New("word is required")
	ErrInvalidLanguage = errors.New("invalid language")
	ErrInvalidLevel    = errors.New("invalid level")

	ErrEmptyVideoID    = errors.New("video id is required")
	ErrInvalidProgress = errors.New("progress must be between 0 and 1")
)
