package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lmt-transport/LMT-Driver-App/internal/model"
)

// NotifyLogRepository is the notification idempotency ledger.
type NotifyLogRepository interface {
	// InsertIfAbsent appends the key unless it already exists. Returns true
	// when this call inserted the key, i.e. the caller won the race and owns
	// the notification. The unique index on notify_key makes this atomic
	// across concurrent processes.
	InsertIfAbsent(ctx context.Context, key string) (bool, error)
	// PruneBefore drops ledger entries older than the cutoff and reports how
	// many were removed.
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type notifyLogRepo struct {
	db *gorm.DB
}

// NewNotifyLogRepo creates the GORM-backed NotifyLogRepository.
func NewNotifyLogRepo(db *gorm.DB) NotifyLogRepository {
	return &notifyLogRepo{db: db}
}

func (r *notifyLogRepo) InsertIfAbsent(ctx context.Context, key string) (bool, error) {
	entry := model.NotificationLog{NotifyKey: key}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "notify_key"}},
			DoNothing: true,
		}).
		Create(&entry)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *notifyLogRepo) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.NotificationLog{})
	return res.RowsAffected, res.Error
}
