package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/lingoreel/lingoreel/internal/logger"
	"github.com/lingoreel/lingoreel/internal/utils"
	"github.com/lingoreel/lingoreel/internal/validators"
	"github.com/lingoreel/lingoreel/models"
)

var vocabColumns = []string{
	"id", "word", "meaning", "reading", "pinyin", "romanization",
	"language", "level", "examples", "created", "updated",
}

type vocabularyRepository struct {
	db      *DB
	logger  *logger.Logger
	changes chan struct{}
	ids     *utils.UUIDGenerator
	valid   validators.Validator
}

func NewVocabularyRepository(db *DB, log *logger.Logger) VocabularyRepository {
	return &vocabularyRepository{
		db:      db,
		logger:  log,
		changes: make(chan struct{}, 1),
		ids:     utils.NewUUIDGenerator(),
		valid:   validators.NewItemValidator(),
	}
}

func (r *vocabularyRepository) GetAllItems(ctx context.Context) ([]models.VocabItem, error) {
	query, args, err := sq.Select(vocabColumns...).
		From("vocabulary").
		OrderBy("word", "language").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build vocabulary select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query vocabulary: %w", err)
	}
	defer rows.Close()

	var items []models.VocabItem
	for rows.Next() {
		item, err := scanVocabItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vocabulary rows: %w", err)
	}

	return items, nil
}

func (r *vocabularyRepository) SaveItems(ctx context.Context, items ...models.VocabItem) error {
	if len(items) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for i := range items {
		if err := r.valid.Validate(ctx, items[i]); err != nil {
			return fmt.Errorf("validate vocabulary item %q: %w", items[i].Word, err)
		}
		if items[i].ID == "" {
			items[i].ID = r.ids.Generate()
		}
		if items[i].Created == nil {
			created := now
			items[i].Created = &created
		}
		updated := now
		items[i].Updated = &updated
	}

	// Keep the existing stable ID when the word is already present.
	const onConflict = `ON CONFLICT(word, language) DO UPDATE SET
		meaning = excluded.meaning,
		reading = excluded.reading,
		pinyin = excluded.pinyin,
		romanization = excluded.romanization,
		level = excluded.level,
		examples = excluded.examples,
		updated = excluded.updated`

	if err := r.upsert(ctx, r.db.DB, onConflict, items); err != nil {
		return err
	}

	r.notify()
	return nil
}

func (r *vocabularyRepository) ImportItems(ctx context.Context, items []models.VocabItem) error {
	if len(items) == 0 {
		return nil
	}

	// The snapshot is authoritative: the merge winner's ID and
	// timestamps replace whatever the row held.
	const onConflict = `ON CONFLICT(word, language) DO UPDATE SET
		id = excluded.id,
		meaning = excluded.meaning,
		reading = excluded.reading,
		pinyin = excluded.pinyin,
		romanization = excluded.romanization,
		level = excluded.level,
		examples = excluded.examples,
		created = excluded.created,
		updated = excluded.updated`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin vocabulary import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err = r.upsert(ctx, tx, onConflict, items); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit vocabulary import: %w", err)
	}
	return nil
}

func (r *vocabularyRepository) Changes() <-chan struct{} {
	return r.changes
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *vocabularyRepository) upsert(ctx context.Context, ex execer, onConflict string, items []models.VocabItem) error {
	log := logger.FromContext(ctx)

	for _, item := range items {
		examples, err := json.Marshal(item.Examples)
		if err != nil {
			return fmt.Errorf("encode examples for %q: %w", item.Word, err)
		}

		query, args, err := sq.Insert("vocabulary").
			Columns(vocabColumns...).
			Values(
				item.ID,
				item.Word,
				item.Meaning,
				item.Reading,
				item.Pinyin,
				item.Romanization,
				string(item.Language),
				string(item.Level),
				string(examples),
				item.Created,
				item.Updated,
			).
			Suffix(onConflict).
			ToSql()
		if err != nil {
			return fmt.Errorf("build vocabulary upsert: %w", err)
		}

		if _, err = ex.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "vocabularyRepository.upsert").
				Str("word", item.Word).
				Str("language", string(item.Language)).
				Msg("failed to upsert vocabulary item")
			return fmt.Errorf("upsert vocabulary item %q: %w", item.Word, err)
		}
	}

	return nil
}

func (r *vocabularyRepository) notify() {
	select {
	case r.changes <- struct{}{}:
	default:
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVocabItem(row rowScanner) (models.VocabItem, error) {
	var (
		item                          models.VocabItem
		reading, pinyin, romanization sql.NullString
		language, level, examples     string
		created, updated              sql.NullTime
	)

	err := row.Scan(
		&item.ID,
		&item.Word,
		&item.Meaning,
		&reading,
		&pinyin,
		&romanization,
		&language,
		&level,
		&examples,
		&created,
		&updated,
	)
	if err != nil {
		return models.VocabItem{}, fmt.Errorf("scan vocabulary row: %w", err)
	}

	item.Language = models.Language(language)
	item.Level = models.Level(level)
	item.Reading = nullableString(reading)
	item.Pinyin = nullableString(pinyin)
	item.Romanization = nullableString(romanization)
	item.Created = nullableTime(created)
	item.Updated = nullableTime(updated)

	if examples != "" {
		if err = json.Unmarshal([]byte(examples), &item.Examples); err != nil {
			return models.VocabItem{}, fmt.Errorf("decode examples for %q: %w", item.Word, err)
		}
	}

	return item, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullableTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
