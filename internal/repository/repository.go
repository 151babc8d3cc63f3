package repository

import "gorm.io/gorm"

// Repository aggregates every data-access interface.
type Repository struct {
	Job       JobRepository
	Driver    DriverRepository
	User      UserRepository
	NotifyLog NotifyLogRepository
}

// NewRepository wires the GORM implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Job:       NewJobRepo(db),
		Driver:    NewDriverRepo(db),
		User:      NewUserRepo(db),
		NotifyLog: NewNotifyLogRepo(db),
	}
}
