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

func newTestVocabRepo(t *testing.T) (*vocabularyRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := NewVocabularyRepository(&DB{DB: db, logger: l}, l).(*vocabularyRepository)
	return repo, mock, db
}

func TestVocabGetAllItems(t *testing.T) {
	repo, mock, db := newTestVocabRepo(t)
	defer db.Close()

	updated := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(vocabColumns).
		AddRow("id-1", "日本", "Japan", "にほん", nil, nil, "ja", "known", `["日本に行きたい"]`, nil, updated).
		AddRow("id-2", "学校", "school", nil, nil, nil, "ja", "new", `[]`, nil, nil)

	mock.ExpectQuery("SELECT (.+) FROM vocabulary").WillReturnRows(rows)

	items, err := repo.GetAllItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "日本", items[0].Word)
	require.NotNil(t, items[0].Reading)
	assert.Equal(t, "にほん", *items[0].Reading)
	require.NotNil(t, items[0].Updated)
	assert.True(t, updated.Equal(*items[0].Updated))
	assert.Equal(t, []string{"日本に行きたい"}, items[0].Examples)

	assert.Nil(t, items[1].Reading)
	assert.Nil(t, items[1].Updated)
	assert.Empty(t, items[1].Examples)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabSaveItems_AssignsIDAndNotifies(t *testing.T) {
	repo, mock, db := newTestVocabRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO vocabulary").WillReturnResult(sqlmock.NewResult(1, 1))

	item := models.VocabItem{Word: "학교", Language: models.Korean, Level: models.LevelNew}
	require.NoError(t, repo.SaveItems(context.Background(), item))

	select {
	case <-repo.Changes():
	default:
		t.Fatal("expected a change notification after SaveItems")
	}

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabImportItems_TransactionalAndSilent(t *testing.T) {
	repo, mock, db := newTestVocabRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO vocabulary").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO vocabulary").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	now := time.Now().UTC()
	items := []models.VocabItem{
		{ID: "a", Word: "日本", Language: models.Japanese, Level: models.LevelKnown, Updated: &now},
		{ID: "b", Word: "学校", Language: models.Japanese, Level: models.LevelNew, Updated: &now},
	}
	require.NoError(t, repo.ImportItems(context.Background(), items))

	select {
	case <-repo.Changes():
		t.Fatal("ImportItems must not emit a change notification")
	default:
	}

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabImportItems_RollsBackOnFailure(t *testing.T) {
	repo, mock, db := newTestVocabRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO vocabulary").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := repo.ImportItems(context.Background(), []models.VocabItem{
		{ID: "a", Word: "日本", Language: models.Japanese},
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabSaveItems_RejectsInvalidItem(t *testing.T) {
	repo, mock, db := newTestVocabRepo(t)
	defer db.Close()

	err := repo.SaveItems(context.Background(), models.VocabItem{
		Word:     "",
		Language: models.Japanese,
		Level:    models.LevelNew,
	})
	require.ErrorIs(t, err, validators.ErrEmptyWord)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabSaveItems_Empty(t *testing.T) {
	repo, mock, db := newTestVocabRepo(t)
	defer db.Close()

	require.NoError(t, repo.SaveItems(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
