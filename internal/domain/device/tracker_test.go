package device

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtside/internal/domain/ban"
	"courtside/internal/shared/logger"
)

type fakeDeviceRepo struct {
	// associations[accountID] is the set of device IDs seen for the account
	associations map[uint]map[string]time.Time
	upsertErr    error
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{associations: make(map[uint]map[string]time.Time)}
}

func (f *fakeDeviceRepo) Upsert(_ context.Context, deviceID string, accountID uint, seenAt time.Time) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if f.associations[accountID] == nil {
		f.associations[accountID] = make(map[string]time.Time)
	}
	f.associations[accountID][deviceID] = seenAt
	return nil
}

func (f *fakeDeviceRepo) CountDistinctDevices(_ context.Context, accountID uint) (int, error) {
	return len(f.associations[accountID]), nil
}

func (f *fakeDeviceRepo) ListByAccount(_ context.Context, accountID uint) ([]*Association, error) {
	return nil, nil
}

func (f *fakeDeviceRepo) DeleteByDevice(_ context.Context, deviceID string) error {
	for _, devices := range f.associations {
		delete(devices, deviceID)
	}
	return nil
}

type fakeBanStore struct {
	bannedAccounts map[uint]bool
	err            error
}

func (f *fakeBanStore) CreateDeviceBan(context.Context, *ban.DeviceBan) error   { return nil }
func (f *fakeBanStore) CreateAccountBan(context.Context, *ban.AccountBan) error { return nil }
func (f *fakeBanStore) UpdateDeviceBan(context.Context, *ban.DeviceBan) error   { return nil }
func (f *fakeBanStore) UpdateAccountBan(context.Context, *ban.AccountBan) error { return nil }

func (f *fakeBanStore) GetDeviceBan(context.Context, string) (*ban.DeviceBan, error) {
	return nil, nil
}

func (f *fakeBanStore) GetAccountBan(_ context.Context, accountID uint) (*ban.AccountBan, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.bannedAccounts[accountID] {
		return ban.NewAccountBan(accountID, nil, "test")
	}
	return nil, nil
}

func (f *fakeBanStore) ListDeviceBans(context.Context, bool) ([]*ban.DeviceBan, error) {
	return nil, nil
}

func (f *fakeBanStore) ListAccountBans(context.Context, bool) ([]*ban.AccountBan, error) {
	return nil, nil
}

func newTestTracker(repo Repository, banStore ban.Repository, limit int) *Tracker {
	registry := ban.NewRegistry(banStore, logger.NewLogger())
	return NewTracker(repo, registry, limit, logger.NewLogger())
}

func TestTracker_UnderLimit(t *testing.T) {
	repo := newFakeDeviceRepo()
	tracker := newTestTracker(repo, &fakeBanStore{}, 3)
	ctx := context.Background()

	for _, dev := range []string{"dev-1", "dev-2", "dev-3"} {
		require.NoError(t, tracker.Track(ctx, 10, dev))
	}

	// Re-tracking a known device stays within the limit.
	assert.NoError(t, tracker.Track(ctx, 10, "dev-2"))
}

func TestTracker_FourthDistinctDeviceRejected(t *testing.T) {
	repo := newFakeDeviceRepo()
	tracker := newTestTracker(repo, &fakeBanStore{}, 3)
	ctx := context.Background()

	for _, dev := range []string{"dev-1", "dev-2", "dev-3"} {
		require.NoError(t, tracker.Track(ctx, 10, dev))
	}

	err := tracker.Track(ctx, 10, "dev-4")
	assert.ErrorIs(t, err, ErrTooManyDevices)
}

func TestTracker_LimitSelfHealsAfterPruning(t *testing.T) {
	repo := newFakeDeviceRepo()
	tracker := newTestTracker(repo, &fakeBanStore{}, 3)
	ctx := context.Background()

	for _, dev := range []string{"dev-1", "dev-2", "dev-3"} {
		require.NoError(t, tracker.Track(ctx, 10, dev))
	}
	require.ErrorIs(t, tracker.Track(ctx, 10, "dev-4"), ErrTooManyDevices)

	// No ban row was written: pruning a device restores access.
	require.NoError(t, repo.DeleteByDevice(ctx, "dev-1"))
	require.NoError(t, repo.DeleteByDevice(ctx, "dev-4"))
	assert.NoError(t, tracker.Track(ctx, 10, "dev-4"))
}

func TestTracker_BannedAccount(t *testing.T) {
	repo := newFakeDeviceRepo()
	banStore := &fakeBanStore{bannedAccounts: map[uint]bool{10: true}}
	tracker := newTestTracker(repo, banStore, 3)

	err := tracker.Track(context.Background(), 10, "dev-1")
	assert.ErrorIs(t, err, ErrBanned)
	assert.Empty(t, repo.associations[10], "banned accounts are not tracked")
}

func TestTracker_BanCheckErrorFailsClosed(t *testing.T) {
	repo := newFakeDeviceRepo()
	banStore := &fakeBanStore{err: errors.New("store timeout")}
	tracker := newTestTracker(repo, banStore, 3)

	err := tracker.Track(context.Background(), 10, "dev-1")
	assert.ErrorIs(t, err, ErrBanned)
}

func TestTracker_DistinctCountsPerAccount(t *testing.T) {
	repo := newFakeDeviceRepo()
	tracker := newTestTracker(repo, &fakeBanStore{}, 3)
	ctx := context.Background()

	// The same device on several accounts doesn't burn any account's budget.
	require.NoError(t, tracker.Track(ctx, 10, "shared-dev"))
	require.NoError(t, tracker.Track(ctx, 20, "shared-dev"))
	require.NoError(t, tracker.Track(ctx, 10, "dev-2"))
	require.NoError(t, tracker.Track(ctx, 20, "dev-3"))

	count, err := repo.CountDistinctDevices(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
