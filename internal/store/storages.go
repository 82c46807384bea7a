package store

import "github.com/lingoreel/lingoreel/internal/logger"

// Storages bundles every local repository behind one constructor so the
// client wiring stays flat.
type Storages struct {
	Vocabulary VocabularyRepository
	History    HistoryRepository
	Session    SessionRepository
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		Vocabulary: NewVocabularyRepository(db, log),
		History:    NewHistoryRepository(db, log),
		Session:    NewSessionRepository(db, log),
	}
}
