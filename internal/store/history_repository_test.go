package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingoreel/lingoreel/internal/logger"
	"github.com/lingoreel/lingoreel/internal/validators"
	"github.com/lingoreel/lingoreel/models"
)

func newTestHistoryRepo(t *testing.T) (*historyRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := NewHistoryRepository(&DB{DB: db, logger: l}, l).(*historyRepository)
	return repo, mock, db
}

func TestHistoryGetAllItems(t *testing.T) {
	repo, mock, db := newTestHistoryRepo(t)
	defer db.Close()

	watched := time.Date(2026, 8, 20, 19, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows(historyColumns).
		AddRow("h1", "v1", "Episode 1", "https://img/1.jpg", "SomeChannel", int64(1420), "ja", watched, 0.75, true).
		AddRow("h2", "v2", "Episode 2", nil, nil, nil, "ja", watched.Add(time.Hour), 0.1, false)

	mock.ExpectQuery("SELECT (.+) FROM history").WillReturnRows(rows)

	items, err := repo.GetAllItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "v1", items[0].VideoID)
	require.NotNil(t, items[0].Duration)
	assert.Equal(t, int64(1420), *items[0].Duration)
	assert.True(t, items[0].IsFavorite)

	assert.Nil(t, items[1].Thumbnail)
	assert.Nil(t, items[1].Duration)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHistorySaveItems_StampsWatchedAt(t *testing.T) {
	repo, mock, db := newTestHistoryRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO history").WillReturnResult(sqlmock.NewResult(1, 1))

	item := models.HistoryItem{VideoID: "v9", Title: "New video", Language: models.Japanese}
	require.NoError(t, repo.SaveItems(context.Background(), item))

	select {
	case <-repo.Changes():
	default:
		t.Fatal("expected a change notification after SaveItems")
	}

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHistorySaveItems_RejectsInvalidItem(t *testing.T) {
	repo, mock, db := newTestHistoryRepo(t)
	defer db.Close()

	err := repo.SaveItems(context.Background(), models.HistoryItem{
		VideoID:  "v9",
		Language: models.Japanese,
		Progress: 1.5,
	})
	require.ErrorIs(t, err, validators.ErrInvalidProgress)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryImportItems_Silent(t *testing.T) {
	repo, mock, db := newTestHistoryRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO history").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	items := []models.HistoryItem{
		{ID: "h1", VideoID: "v1", Language: models.Japanese, WatchedAt: time.Now().UTC()},
	}
	require.NoError(t, repo.ImportItems(context.Background(), items))

	select {
	case <-repo.Changes():
		t.Fatal("ImportItems must not emit a change notification")
	default:
	}

	require.NoError(t, mock.ExpectationsWereMet())
}
