package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtside/internal/domain/access"
	"courtside/internal/domain/catalog"
	"courtside/internal/domain/device"
	"courtside/internal/domain/grant"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
)

type fakeDeviceBans struct {
	banned map[string]bool
}

func (f *fakeDeviceBans) IsDeviceBanned(ctx context.Context, deviceID string) bool {
	return f.banned[deviceID]
}

type fakeTracker struct {
	err     error
	tracked []string
}

func (f *fakeTracker) Track(ctx context.Context, accountID uint, deviceID string) error {
	if f.err != nil {
		return f.err
	}
	f.tracked = append(f.tracked, deviceID)
	return nil
}

type fakeAccountBans struct {
	banned map[uint]bool
}

func (f *fakeAccountBans) IsAccountBanned(ctx context.Context, accountID uint) (bool, error) {
	return f.banned[accountID], nil
}

type fakeGrantLookup struct {
	courseGrants map[uint]*grant.Grant
}

func (f *fakeGrantLookup) ActiveCourseGrant(ctx context.Context, accountID, courseID uint, now time.Time) (*grant.Grant, error) {
	g := f.courseGrants[accountID]
	if g == nil || !g.UnlocksCourse(now) {
		return nil, nil
	}
	return g, nil
}

func (f *fakeGrantLookup) ActiveCardGrant(ctx context.Context, accountID, cardID uint, now time.Time) (*grant.Grant, error) {
	return nil, nil
}

func (f *fakeGrantLookup) ActiveMonthGrant(ctx context.Context, accountID, courseID uint, monthNumber int, now time.Time) (*grant.Grant, error) {
	return nil, nil
}

// fakeStore backs both the resolver's catalog lookups and the tree builder.
type fakeStore struct {
	course      *catalog.Course
	ageGroups   []*catalog.AgeGroup
	months      []*catalog.TrainingMonth
	days        []*catalog.TrainingDay
	videos      []*catalog.Video
	freePreview bool
}

func (f *fakeStore) GetCourse(ctx context.Context, id uint) (*catalog.Course, error) {
	if f.course != nil && f.course.ID == id {
		return f.course, nil
	}
	return nil, nil
}

func (f *fakeStore) GetPackage(ctx context.Context, id uint) (*catalog.Package, error) {
	return nil, nil
}

func (f *fakeStore) GetAgeGroup(ctx context.Context, id uint) (*catalog.AgeGroup, error) {
	for _, g := range f.ageGroups {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetPlayerCard(ctx context.Context, id uint) (*catalog.PlayerCard, error) {
	return nil, nil
}

func (f *fakeStore) GetMonth(ctx context.Context, ageGroupID uint, number int) (*catalog.TrainingMonth, error) {
	for _, m := range f.months {
		if m.AgeGroupID == ageGroupID && m.Number == number {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetMonthByID(ctx context.Context, id uint) (*catalog.TrainingMonth, error) {
	for _, m := range f.months {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetDay(ctx context.Context, id uint) (*catalog.TrainingDay, error) {
	for _, d := range f.days {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetVideo(ctx context.Context, id uint) (*catalog.Video, error) {
	for _, v := range f.videos {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CountPackages(ctx context.Context, courseID uint) (int64, error) {
	return 0, nil
}

func (f *fakeStore) AllowedAgeGroups(ctx context.Context, packageID, courseID uint) ([]uint, error) {
	return nil, nil
}

func (f *fakeStore) HasFreePreview(ctx context.Context, courseID, ageGroupID uint, monthNumber int) (bool, error) {
	return f.freePreview, nil
}

func (f *fakeStore) ListAgeGroups(ctx context.Context, courseID uint) ([]*catalog.AgeGroup, error) {
	return f.ageGroups, nil
}

func (f *fakeStore) ListPlayerCards(ctx context.Context, ageGroupID uint) ([]*catalog.PlayerCard, error) {
	return nil, nil
}

func (f *fakeStore) ListMonths(ctx context.Context, ageGroupID uint) ([]*catalog.TrainingMonth, error) {
	return f.months, nil
}

func (f *fakeStore) ListDays(ctx context.Context, monthID uint) ([]*catalog.TrainingDay, error) {
	return f.days, nil
}

func (f *fakeStore) ListVideos(ctx context.Context, dayID uint) ([]*catalog.Video, error) {
	return f.videos, nil
}

type passthroughRenderer struct{}

func (passthroughRenderer) ToHTMLSanitized(markdown string) (string, error) {
	return markdown, nil
}

type contentFixture struct {
	deviceBans  *fakeDeviceBans
	tracker     *fakeTracker
	accountBans *fakeAccountBans
	grants      *fakeGrantLookup
	store       *fakeStore
	uc          *GetContentUseCase
}

func newContentFixture(t *testing.T) *contentFixture {
	t.Helper()

	store := &fakeStore{
		course:    &catalog.Course{ID: 1, Slug: "fundamentals", Name: "Fundamentals", Published: true},
		ageGroups: []*catalog.AgeGroup{{ID: 10, CourseID: 1, Name: "U12"}},
		months:    []*catalog.TrainingMonth{{ID: 200, AgeGroupID: 10, Number: 1, Title: "Month 1"}},
		days:      []*catalog.TrainingDay{{ID: 300, MonthID: 200, Number: 1, Title: "Day 1"}},
		videos: []*catalog.Video{
			{ID: 400, DayID: 300, Title: "Warmup", URL: "https://cdn/free.mp4", IsFreePreview: true},
			{ID: 401, DayID: 300, Title: "Drills", URL: "https://cdn/paid.mp4"},
		},
		freePreview: true,
	}

	log := logger.NewLogger()
	f := &contentFixture{
		deviceBans:  &fakeDeviceBans{banned: make(map[string]bool)},
		tracker:     &fakeTracker{},
		accountBans: &fakeAccountBans{banned: make(map[uint]bool)},
		grants:      &fakeGrantLookup{courseGrants: make(map[uint]*grant.Grant)},
		store:       store,
	}
	resolver := access.NewResolver(f.accountBans, f.grants, store, log)
	trees := access.NewTreeBuilder(store, passthroughRenderer{}, log)
	f.uc = NewGetContentUseCase(f.deviceBans, f.tracker, resolver, trees, log)
	return f
}

func grantCourse(t *testing.T, f *contentFixture, accountID uint) {
	t.Helper()
	scope, err := grant.CourseScope(1)
	require.NoError(t, err)
	g, err := grant.NewGrant(accountID, scope, grant.SourceKindCode, nil, "grt_test")
	require.NoError(t, err)
	f.grants.courseGrants[accountID] = g
}

func treeVideos(t *testing.T, tree *access.ContentTree) []*access.VideoNode {
	t.Helper()
	require.NotNil(t, tree)
	require.NotEmpty(t, tree.AgeGroups)
	require.NotEmpty(t, tree.AgeGroups[0].Months)
	require.NotEmpty(t, tree.AgeGroups[0].Months[0].Days)
	return tree.AgeGroups[0].Months[0].Days[0].Videos
}

func TestGetContent_GrantedAccountGetsFullTree(t *testing.T) {
	f := newContentFixture(t)
	grantCourse(t, f, 42)

	result, err := f.uc.Execute(context.Background(), GetContentQuery{
		AccountID: 42, Authenticated: true, DeviceID: "dev-1", CourseID: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, "full_access", result.Decision)
	videos := treeVideos(t, result.Tree)
	require.Len(t, videos, 2)
	for _, v := range videos {
		assert.False(t, v.Locked)
		assert.NotEmpty(t, v.URL)
	}
	assert.Equal(t, []string{"dev-1"}, f.tracker.tracked)
}

func TestGetContent_AnonymousGetsLockedPreview(t *testing.T) {
	f := newContentFixture(t)

	result, err := f.uc.Execute(context.Background(), GetContentQuery{
		DeviceID: "dev-1", CourseID: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, "preview_only", result.Decision)
	videos := treeVideos(t, result.Tree)
	require.Len(t, videos, 2)
	assert.False(t, videos[0].Locked)
	assert.NotEmpty(t, videos[0].URL)
	assert.True(t, videos[1].Locked)
	assert.Empty(t, videos[1].URL)
	assert.Empty(t, f.tracker.tracked, "anonymous viewers are not tracked")
}

func TestGetContent_BannedDeviceDeniedBeforeResolution(t *testing.T) {
	f := newContentFixture(t)
	f.deviceBans.banned["dev-bad"] = true
	grantCourse(t, f, 42)

	result, err := f.uc.Execute(context.Background(), GetContentQuery{
		AccountID: 42, Authenticated: true, DeviceID: "dev-bad", CourseID: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, "denied", result.Decision)
	assert.Equal(t, "device_banned", result.Reason)
	assert.Nil(t, result.Tree)
	assert.Empty(t, f.tracker.tracked)
}

func TestGetContent_AdminSkipsDeviceEnforcement(t *testing.T) {
	f := newContentFixture(t)
	f.deviceBans.banned["dev-bad"] = true

	result, err := f.uc.Execute(context.Background(), GetContentQuery{
		AccountID: 1, Authenticated: true, IsAdmin: true, DeviceID: "dev-bad", CourseID: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, "full_access", result.Decision)
	assert.Empty(t, f.tracker.tracked)
}

func TestGetContent_DeviceLimitDenies(t *testing.T) {
	f := newContentFixture(t)
	f.tracker.err = device.ErrTooManyDevices
	grantCourse(t, f, 42)

	result, err := f.uc.Execute(context.Background(), GetContentQuery{
		AccountID: 42, Authenticated: true, DeviceID: "dev-4", CourseID: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, "denied", result.Decision)
	assert.Equal(t, "device_limit", result.Reason)
}

// A ban surfaced by the tracker is reported as a ban, not as a device
// limit overflow.
func TestGetContent_TrackerBanDenies(t *testing.T) {
	f := newContentFixture(t)
	f.tracker.err = device.ErrBanned
	grantCourse(t, f, 42)

	result, err := f.uc.Execute(context.Background(), GetContentQuery{
		AccountID: 42, Authenticated: true, DeviceID: "dev-4", CourseID: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, "denied", result.Decision)
	assert.Equal(t, access.ReasonAccountBanned, result.Reason)
}

func TestGetContent_UnknownVideoIsNotFound(t *testing.T) {
	f := newContentFixture(t)
	grantCourse(t, f, 42)

	_, err := f.uc.Execute(context.Background(), GetContentQuery{
		AccountID: 42, Authenticated: true, DeviceID: "dev-1", CourseID: 1, VideoID: 99999,
	})

	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestGetContent_UnknownCourseIsNotFound(t *testing.T) {
	f := newContentFixture(t)

	_, err := f.uc.Execute(context.Background(), GetContentQuery{
		AccountID: 42, Authenticated: true, DeviceID: "dev-1", CourseID: 999,
	})

	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestGetContent_InvalidLocator(t *testing.T) {
	f := newContentFixture(t)

	_, err := f.uc.Execute(context.Background(), GetContentQuery{
		AccountID: 42, Authenticated: true, DeviceID: "dev-1",
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
