package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceAssociationRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeviceAssociationRepository(db, testLogger())
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("repeat sightings do not add rows", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, "device-a", 1, now))
		require.NoError(t, repo.Upsert(ctx, "device-a", 1, now.Add(time.Minute)))
		require.NoError(t, repo.Upsert(ctx, "device-a", 1, now.Add(2*time.Minute)))

		count, err := repo.CountDistinctDevices(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("upsert refreshes last seen", func(t *testing.T) {
		later := now.Add(time.Hour)
		require.NoError(t, repo.Upsert(ctx, "device-a", 1, later))

		assocs, err := repo.ListByAccount(ctx, 1)
		require.NoError(t, err)
		require.Len(t, assocs, 1)
		assert.WithinDuration(t, later, assocs[0].LastSeenAt(), time.Second)
	})

	t.Run("same device across accounts stays separate", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, "device-a", 2, now))

		count, err := repo.CountDistinctDevices(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		count, err = repo.CountDistinctDevices(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestDeviceAssociationRepository_CountAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeviceAssociationRepository(db, testLogger())
	ctx := context.Background()
	now := time.Now().UTC()

	for i, deviceID := range []string{"d1", "d2", "d3"} {
		require.NoError(t, repo.Upsert(ctx, deviceID, 5, now.Add(time.Duration(i)*time.Minute)))
	}

	count, err := repo.CountDistinctDevices(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	t.Run("most recently seen first", func(t *testing.T) {
		assocs, err := repo.ListByAccount(ctx, 5)
		require.NoError(t, err)
		require.Len(t, assocs, 3)
		assert.Equal(t, "d3", assocs[0].DeviceID())
		assert.Equal(t, "d1", assocs[2].DeviceID())
	})

	t.Run("unknown account counts zero", func(t *testing.T) {
		count, err := repo.CountDistinctDevices(ctx, 99)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestDeviceAssociationRepository_DeleteByDevice(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeviceAssociationRepository(db, testLogger())
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Upsert(ctx, "shared-device", 1, now))
	require.NoError(t, repo.Upsert(ctx, "shared-device", 2, now))
	require.NoError(t, repo.Upsert(ctx, "own-device", 1, now))

	require.NoError(t, repo.DeleteByDevice(ctx, "shared-device"))

	count, err := repo.CountDistinctDevices(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = repo.CountDistinctDevices(ctx, 2)
	require.NoError(t, err)
	assert.Zero(t, count)

	t.Run("deleting an unknown device is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.DeleteByDevice(ctx, "never-seen"))
	})
}
