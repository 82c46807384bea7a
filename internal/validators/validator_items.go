package validators

import (
	"context"

	"github.com/lingoreel/lingoreel/models"
)

const (
	FieldWord      = "word"
	FieldLanguage  = "language"
	FieldLevel     = "level"
	FieldVideoID  = "video_id"
	FieldProgress = "progress"
)

// ItemValidator validates vocabulary and watch-history entities before
// they reach the local store.
type ItemValidator struct {
}

func NewItemValidator() Validator {
	return &ItemValidator{}
}

func (v *ItemValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.VocabItem:
		return v.validateVocabItem(ctx, value, fields...)
	case *models.VocabItem:
		return v.validateVocabItem(ctx, *value, fields...)

	case models.HistoryItem:
		return v.validateHistoryItem(ctx, value, fields...)
	case *models.HistoryItem:
		return v.validateHistoryItem(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ItemValidator) validateVocabItem(_ context.Context, item models.VocabItem, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldWord, FieldLanguage, FieldLevel}
	}

	for _, f := range fields {
		switch f {
		case FieldWord:
			if item.Word == "" {
				return ErrEmptyWord
			}
		case FieldLanguage:
			if !item.Language.Valid() {
				return ErrInvalidLanguage
			}
		case FieldLevel:
			if !item.Level.Valid() {
				return ErrInvalidLevel
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ItemValidator) validateHistoryItem(_ context.Context, item models.HistoryItem, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldVideoID, FieldLanguage, FieldProgress}
	}

	for _, f := range fields {
		switch f {
		case FieldVideoID:
			if item.VideoID == "" {
				return ErrEmptyVideoID
			}
		case FieldLanguage:
			if !item.Language.Valid() {
				return ErrInvalidLanguage
			}
		case FieldProgress:
			if item.Progress < 0 || item.Progress > 1 {
				return ErrInvalidProgress
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
