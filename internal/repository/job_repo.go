package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/lmt-transport/LMT-Driver-App/internal/model"
)

// JobRepository is the branch-row data access layer. Trip-level writes fan out to every
// row sharing the trip key; branch-level writes touch exactly one row.
type JobRepository interface {
	ListAll(ctx context.Context) ([]model.JobRecord, error)
	ListByDate(ctx context.Context, poDate string) ([]model.JobRecord, error)
	// GetTrip returns every branch row of one trip, in sheet order.
	GetTrip(ctx context.Context, key model.TripKey) ([]model.JobRecord, error)
	CreateBatch(ctx context.Context, rows []model.JobRecord) error
	// UpdateTrip writes trip-shared columns (driver, plate, t1..t6, status)
	// onto every row of the trip and reports how many rows it touched.
	UpdateTrip(ctx context.Context, key model.TripKey, updates map[string]interface{}) (int64, error)
	// UpdateBranch writes per-branch columns (t7, t8, branch status) onto the
	// single row for the given branch.
	UpdateBranch(ctx context.Context, key model.TripKey, branchName string, updates map[string]interface{}) (int64, error)
	// DeleteTrip removes every row of the trip (explicit cancellation is the
	// only path that deletes rows).
	DeleteTrip(ctx context.Context, key model.TripKey) (int64, error)
}

type jobRepo struct {
	db *gorm.DB
}

// NewJobRepo creates the GORM-backed JobRepository.
func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) ListAll(ctx context.Context) ([]model.JobRecord, error) {
	var rows []model.JobRecord
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *jobRepo) ListByDate(ctx context.Context, poDate string) ([]model.JobRecord, error) {
	var rows []model.JobRecord
	err := r.db.WithContext(ctx).
		Where("po_date = ?", poDate).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *jobRepo) GetTrip(ctx context.Context, key model.TripKey) ([]model.JobRecord, error) {
	var rows []model.JobRecord
	err := r.db.WithContext(ctx).
		Where("po_date = ? AND car_no = ? AND round = ?", key.PODate, key.CarNo, key.Round).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *jobRepo) CreateBatch(ctx context.Context, rows []model.JobRecord) error {
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *jobRepo) tripScope(ctx context.Context, key model.TripKey) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.JobRecord{}).
		Where("po_date = ? AND car_no = ? AND round = ?", key.PODate, key.CarNo, key.Round)
}

func (r *jobRepo) UpdateTrip(ctx context.Context, key model.TripKey, updates map[string]interface{}) (int64, error) {
	res := r.tripScope(ctx, key).Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *jobRepo) UpdateBranch(ctx context.Context, key model.TripKey, branchName string, updates map[string]interface{}) (int64, error) {
	res := r.tripScope(ctx, key).
		Where("branch_name = ?", branchName).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *jobRepo) DeleteTrip(ctx context.Context, key model.TripKey) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("po_date = ? AND car_no = ? AND round = ?", key.PODate, key.CarNo, key.Round).
		Delete(&model.JobRecord{})
	return res.RowsAffected, res.Error
}
