package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lmt-transport/LMT-Driver-App/internal/model"
	"github.com/lmt-transport/LMT-Driver-App/internal/repository"
)

// ── Mock JobRepository ──

type mockJobRepo struct {
	mu   sync.Mutex
	rows []model.JobRecord
	err  error // when set, every call fails with it
}

func newMockJobRepo(rows ...model.JobRecord) *mockJobRepo {
	return &mockJobRepo{rows: rows}
}

func (m *mockJobRepo) ListAll(_ context.Context) ([]model.JobRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]model.JobRecord(nil), m.rows...), nil
}

func (m *mockJobRepo) ListByDate(_ context.Context, poDate string) ([]model.JobRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []model.JobRecord
	for _, r := range m.rows {
		if r.PODate == poDate {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockJobRepo) GetTrip(_ context.Context, key model.TripKey) ([]model.JobRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []model.JobRecord
	for _, r := range m.rows {
		if r.PODate == key.PODate && r.CarNo == key.CarNo && r.Round == key.Round {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockJobRepo) CreateBatch(_ context.Context, rows []model.JobRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, rows...)
	return nil
}

func (m *mockJobRepo) UpdateTrip(_ context.Context, key model.TripKey, updates map[string]interface{}) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for i := range m.rows {
		r := &m.rows[i]
		if r.PODate == key.PODate && r.CarNo == key.CarNo && r.Round == key.Round {
			applyUpdates(r, updates)
			n++
		}
	}
	return n, nil
}

func (m *mockJobRepo) UpdateBranch(_ context.Context, key model.TripKey, branchName string, updates map[string]interface{}) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for i := range m.rows {
		r := &m.rows[i]
		if r.PODate == key.PODate && r.CarNo == key.CarNo && r.Round == key.Round && r.BranchName == branchName {
			applyUpdates(r, updates)
			n++
		}
	}
	return n, nil
}

func (m *mockJobRepo) DeleteTrip(_ context.Context, key model.TripKey) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	var kept []model.JobRecord
	var n int64
	for _, r := range m.rows {
		if r.PODate == key.PODate && r.CarNo == key.CarNo && r.Round == key.Round {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.rows = kept
	return n, nil
}

func applyUpdates(r *model.JobRecord, updates map[string]interface{}) {
	for col, v := range updates {
		val, _ := v.(string)
		switch col {
		case "driver":
			r.Driver = val
		case "plate":
			r.Plate = val
		case "status":
			r.Status = val
		case "t1_enter":
			r.T1Enter = val
		case "t2_start_load":
			r.T2StartLoad = val
		case "t3_end_load":
			r.T3EndLoad = val
		case "t4_submit_doc":
			r.T4SubmitDoc = val
		case "t5_recv_doc":
			r.T5RecvDoc = val
		case "t6_exit":
			r.T6Exit = val
		case "t7_arrive_branch":
			r.T7ArriveBranch = val
		case "t8_end_job":
			r.T8EndJob = val
		}
	}
}

// ── Mock DriverRepository ──

type mockDriverRepo struct {
	drivers []model.Driver
}

func (m *mockDriverRepo) ListActive(_ context.Context) ([]model.Driver, error) {
	return append([]model.Driver(nil), m.drivers...), nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users []model.User
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for i := range m.users {
		if m.users[i].Username == username {
			return &m.users[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	return append([]model.User(nil), m.users...), nil
}

// ── Mock NotifyLogRepository ──

type mockNotifyLogRepo struct {
	mu   sync.Mutex
	keys map[string]time.Time
	err  error
}

func newMockNotifyLogRepo() *mockNotifyLogRepo {
	return &mockNotifyLogRepo{keys: make(map[string]time.Time)}
}

func (m *mockNotifyLogRepo) InsertIfAbsent(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.keys[key]; ok {
		return false, nil
	}
	m.keys[key] = time.Now()
	return true, nil
}

func (m *mockNotifyLogRepo) PruneBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for k, at := range m.keys {
		if at.Before(cutoff) {
			delete(m.keys, k)
			n++
		}
	}
	return n, nil
}

// ── Mock Notifier ──

type mockNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (m *mockNotifier) Send(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, text)
	return nil
}

func (m *mockNotifier) sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

// ── helpers ──

func newTestRepo(job *mockJobRepo, ledger *mockNotifyLogRepo) *repository.Repository {
	if job == nil {
		job = newMockJobRepo()
	}
	if ledger == nil {
		ledger = newMockNotifyLogRepo()
	}
	return &repository.Repository{
		Job:       job,
		Driver:    &mockDriverRepo{},
		User:      &mockUserRepo{},
		NotifyLog: ledger,
	}
}

// fixedClock returns a clock stuck at the given Bangkok instant.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
