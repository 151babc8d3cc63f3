package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/lmt-transport/LMT-Driver-App/internal/model"
)

// DriverRepository reads the driver roster.
type DriverRepository interface {
	ListActive(ctx context.Context) ([]model.Driver, error)
}

type driverRepo struct {
	db *gorm.DB
}

// NewDriverRepo creates the GORM-backed DriverRepository.
func NewDriverRepo(db *gorm.DB) DriverRepository {
	return &driverRepo{db: db}
}

func (r *driverRepo) ListActive(ctx context.Context) ([]model.Driver, error) {
	var drivers []model.Driver
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&drivers).Error
	return drivers, err
}
