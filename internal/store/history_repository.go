package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/lingoreel/lingoreel/internal/logger"
	"github.com/lingoreel/lingoreel/internal/utils"
	"github.com/lingoreel/lingoreel/internal/validators"
	"github.com/lingoreel/lingoreel/models"
)

var historyColumns = []string{
	"id", "video_id", "title", "thumbnail", "channel", "duration",
	"language", "watched_at", "progress", "is_favorite",
}

type historyRepository struct {
	db      *DB
	logger  *logger.Logger
	ids     *utils.UUIDGenerator
	valid   validators.Validator
	changes chan struct{}
}

func NewHistoryRepository(db *DB, log *logger.Logger) HistoryRepository {
	return &historyRepository{
		db:      db,
		logger:  log,
		ids:     utils.NewUUIDGenerator(),
		valid:   validators.NewItemValidator(),
		changes: make(chan struct{}, 1),
	}
}

func (r *historyRepository) GetAllItems(ctx context.Context) ([]models.HistoryItem, error) {
	query, args, err := sq.Select(historyColumns...).
		From("history").
		OrderBy("watched_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build history select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var items []models.HistoryItem
	for rows.Next() {
		item, err := scanHistoryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}

	return items, nil
}

func (r *historyRepository) SaveItems(ctx context.Context, items ...models.HistoryItem) error {
	if len(items) == 0 {
		return nil
	}

	for i := range items {
		if err := r.valid.Validate(ctx, items[i]); err != nil {
			return fmt.Errorf("validate history item %q: %w", items[i].VideoID, err)
		}
		if items[i].ID == "" {
			items[i].ID = r.ids.Generate()
		}
		if items[i].WatchedAt.IsZero() {
			items[i].WatchedAt = time.Now().UTC()
		}
	}

	// A rewatch keeps the stable ID assigned on first watch.
	const onConflict = `ON CONFLICT(video_id) DO UPDATE SET
		title = excluded.title,
		thumbnail = excluded.thumbnail,
		channel = excluded.channel,
		duration = excluded.duration,
		watched_at = excluded.watched_at,
		progress = excluded.progress,
		is_favorite = excluded.is_favorite`

	if err := r.upsert(ctx, r.db.DB, onConflict, items); err != nil {
		return err
	}

	r.notify()
	return nil
}

func (r *historyRepository) ImportItems(ctx context.Context, items []models.HistoryItem) error {
	if len(items) == 0 {
		return nil
	}

	const onConflict = `ON CONFLICT(video_id) DO UPDATE SET
		id = excluded.id,
		title = excluded.title,
		thumbnail = excluded.thumbnail,
		channel = excluded.channel,
		duration = excluded.duration,
		watched_at = excluded.watched_at,
		progress = excluded.progress,
		is_favorite = excluded.is_favorite`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err = r.upsert(ctx, tx, onConflict, items); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit history import: %w", err)
	}
	return nil
}

func (r *historyRepository) Changes() <-chan struct{} {
	return r.changes
}

func (r *historyRepository) upsert(ctx context.Context, ex execer, onConflict string, items []models.HistoryItem) error {
	log := logger.FromContext(ctx)

	for _, item := range items {
		query, args, err := sq.Insert("history").
			Columns(historyColumns...).
			Values(
				item.ID,
				item.VideoID,
				item.Title,
				item.Thumbnail,
				item.Channel,
				item.Duration,
				string(item.Language),
				item.WatchedAt,
				item.Progress,
				item.IsFavorite,
			).
			Suffix(onConflict).
			ToSql()
		if err != nil {
			return fmt.Errorf("build history upsert: %w", err)
		}

		if _, err = ex.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "historyRepository.upsert").
				Str("video_id", item.VideoID).
				Msg("failed to upsert history item")
			return fmt.Errorf("upsert history item %q: %w", item.VideoID, err)
		}
	}

	return nil
}

func (r *historyRepository) notify() {
	select {
	case r.changes <- struct{}{}:
	default:
	}
}

func scanHistoryItem(row rowScanner) (models.HistoryItem, error) {
	var (
		item               models.HistoryItem
		thumbnail, channel sql.NullString
		duration           sql.NullInt64
		language           string
	)

	err := row.Scan(
		&item.ID,
		&item.VideoID,
		&item.Title,
		&thumbnail,
		&channel,
		&duration,
		&language,
		&item.WatchedAt,
		&item.Progress,
		&item.IsFavorite,
	)
	if err != nil {
		return models.HistoryItem{}, fmt.Errorf("scan history row: %w", err)
	}

	item.Language = models.Language(language)
	item.Thumbnail = nullableString(thumbnail)
	item.Channel = nullableString(channel)
	if duration.Valid {
		d := duration.Int64
		item.Duration = &d
	}

	return item, nil
}
