package services

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lattelane/repository"
)

// CleanupService reclaims draft orders that never reached paid within
// the retention window. Invoked on demand (admin endpoint or an
// external scheduler hitting it); there is no in-process timer.
type CleanupService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	Retention time.Duration
	Log       *zap.Logger
}

func NewCleanupService(db *gorm.DB, repo *repository.OrderRepository, retention time.Duration, log *zap.Logger) *CleanupService {
	return &CleanupService{DB: db, Repo: repo, Retention: retention, Log: log}
}

// Sweep deletes abandoned drafts and their lines, returning the number
// of orders removed. Safe to run concurrently with webhook delivery:
// the not-paid predicate is re-checked inside the delete transaction.
func (s *CleanupService) Sweep() (int64, error) {
	cutoff := time.Now().Add(-s.Retention)

	ids, err := s.Repo.ExpiredDraftIDs(cutoff)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		n, err := s.Repo.DeleteOrdersWithItems(tx, ids)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.Log.Info("draft cleanup sweep",
		zap.Int("candidates", len(ids)),
		zap.Int64("deleted", deleted),
		zap.Duration("retention", s.Retention))
	return deleted, nil
}
