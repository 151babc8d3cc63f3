package cache

import (
	"context"
	"time"

	"github.com/lmt-transport/LMT-Driver-App/internal/model"
	"github.com/lmt-transport/LMT-Driver-App/internal/repository"
)

// Resource names accepted by Store.Invalidate.
const (
	ResourceJobs    = "Jobs"
	ResourceDrivers = "Drivers"
	ResourceUsers   = "Users"
)

// Store bundles the per-resource caches over the record store. Each resource
// expires independently on the shared TTL.
type Store struct {
	repo *repository.Repository

	jobs    *Resource[model.JobRecord]
	drivers *Resource[model.Driver]
	users   *Resource[model.User]
}

// NewStore builds the cache over the given repositories.
func NewStore(repo *repository.Repository, ttl time.Duration, now func() time.Time) *Store {
	return &Store{
		repo:    repo,
		jobs:    NewResource[model.JobRecord](ttl, now),
		drivers: NewResource[model.Driver](ttl, now),
		users:   NewResource[model.User](ttl, now),
	}
}

// Jobs returns the cached job rows (all dates).
func (s *Store) Jobs(ctx context.Context) ([]model.JobRecord, error) {
	return s.jobs.Get(ctx, s.repo.Job.ListAll)
}

// Drivers returns the cached driver roster.
func (s *Store) Drivers(ctx context.Context) ([]model.Driver, error) {
	return s.drivers.Get(ctx, s.repo.Driver.ListActive)
}

// Users returns the cached console accounts.
func (s *Store) Users(ctx context.Context) ([]model.User, error) {
	return s.users.Get(ctx, s.repo.User.List)
}

// Invalidate forces the next read of the named resource to hit the store.
// Called after every write so reads in this process observe new data at once;
// other processes converge within the TTL.
func (s *Store) Invalidate(resource string) {
	switch resource {
	case ResourceJobs:
		s.jobs.Invalidate()
	case ResourceDrivers:
		s.drivers.Invalidate()
	case ResourceUsers:
		s.users.Invalidate()
	}
}
