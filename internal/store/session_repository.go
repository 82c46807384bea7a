package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/lingoreel/lingoreel/internal/logger"
	"github.com/lingoreel/lingoreel/models"
)

type sessionRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewSessionRepository(db *DB, log *logger.Logger) SessionRepository {
	return &sessionRepository{db: db, logger: log}
}

func (r *sessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	query, args, err := sq.Insert("session").
		Columns("rowid_guard", "user_id", "token", "saved_at").
		Values(1, session.UserID, session.Token, session.SavedAt).
		Suffix(`ON CONFLICT(rowid_guard) DO UPDATE SET
			user_id = excluded.user_id,
			token = excluded.token,
			saved_at = excluded.saved_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build session upsert: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *sessionRepository) GetSession(ctx context.Context) (models.Session, error) {
	query, args, err := sq.Select("user_id", "token", "saved_at").
		From("session").
		Where(sq.Eq{"rowid_guard": 1}).
		ToSql()
	if err != nil {
		return models.Session{}, fmt.Errorf("build session select: %w", err)
	}

	var session models.Session
	row := r.db.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&session.UserID, &session.Token, &session.SavedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, fmt.Errorf("scan session: %w", err)
	}

	return session, nil
}

func (r *sessionRepository) ClearSession(ctx context.Context) error {
	query, args, err := sq.Delete("session").ToSql()
	if err != nil {
		return fmt.Errorf("build session delete: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
