package grant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func courseScope(t *testing.T, courseID uint) Scope {
	t.Helper()
	s, err := CourseScope(courseID)
	require.NoError(t, err)
	return s
}

func newCourseGrant(t *testing.T, accountID uint, endAt *time.Time, source SourceKind) *Grant {
	t.Helper()
	g, err := NewGrant(accountID, courseScope(t, 7), source, endAt, "grt_test12345")
	require.NoError(t, err)
	require.NotNil(t, g)
	return g
}

func reconstructGrant(t *testing.T, scope Scope, status Status, source SourceKind, startAt time.Time, endAt *time.Time) *Grant {
	t.Helper()
	g, err := ReconstructGrant(ReconstructParams{
		ID:         1,
		SID:        "grt_test12345",
		AccountID:  10,
		Scope:      scope,
		StartAt:    startAt,
		EndAt:      endAt,
		Status:     status,
		SourceKind: source,
		Version:    1,
		CreatedAt:  startAt,
		UpdatedAt:  startAt,
	})
	require.NoError(t, err)
	return g
}

func timePtr(ts time.Time) *time.Time {
	return &ts
}

// =====================================================================
// TestScope_*
// =====================================================================

func TestScope_CourseRequiresCourseID(t *testing.T) {
	_, err := CourseScope(0)
	assert.Error(t, err)
}

func TestScope_MonthRequiresPositiveNumber(t *testing.T) {
	_, err := MonthScope(3, 0)
	assert.Error(t, err)

	s, err := MonthScope(3, 4)
	require.NoError(t, err)
	assert.Equal(t, uint(3), s.CourseID())
	assert.Equal(t, 4, s.MonthNumber())
}

func TestScope_ReconstructRejectsUnknownType(t *testing.T) {
	_, err := ReconstructScope("bundle", 1, 0, 0)
	assert.Error(t, err)
}

func TestScope_Equal(t *testing.T) {
	a, err := MonthScope(3, 4)
	require.NoError(t, err)
	b, err := MonthScope(3, 4)
	require.NoError(t, err)
	c, err := MonthScope(3, 5)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

// =====================================================================
// TestGrant_Window
// =====================================================================

func TestGrant_UnboundedIsActive(t *testing.T) {
	g := newCourseGrant(t, 10, nil, SourceKindManual)
	assert.True(t, g.IsActive(time.Now().UTC().Add(100*24*365*time.Hour)))
}

func TestGrant_ActiveUntilEnd(t *testing.T) {
	now := time.Now().UTC()
	end := now.Add(24 * time.Hour)
	g := newCourseGrant(t, 10, &end, SourceKindCode)

	assert.True(t, g.IsActive(now))
	assert.True(t, g.IsActive(end.Add(-time.Second)))
	assert.False(t, g.IsActive(end), "grant expires exactly at endAt")
	assert.False(t, g.IsActive(end.Add(time.Hour)))
}

func TestGrant_InactiveStatusesNeverActive(t *testing.T) {
	now := time.Now().UTC()
	scope := courseScope(t, 7)

	for _, status := range []Status{StatusExpired, StatusRevoked} {
		g := reconstructGrant(t, scope, status, SourceKindManual, now.Add(-time.Hour), nil)
		assert.False(t, g.IsActive(now), "status %s", status)
	}
}

func TestGrant_UnknownSourceKindDoesNotUnlockCourse(t *testing.T) {
	now := time.Now().UTC()
	scope := courseScope(t, 7)

	g := reconstructGrant(t, scope, StatusActive, SourceKind("pending_payment"), now.Add(-time.Hour), nil)
	assert.True(t, g.IsActive(now), "row is active by the window rule")
	assert.False(t, g.UnlocksCourse(now), "but an unqualified source must not unlock content")

	for _, source := range []SourceKind{SourceKindCode, SourceKindManual, SourceKindAdmin} {
		g := reconstructGrant(t, scope, StatusActive, source, now.Add(-time.Hour), nil)
		assert.True(t, g.UnlocksCourse(now), "source %s", source)
	}
}

// =====================================================================
// TestGrant_ExtendWindow (merge-on-reissue rule)
// =====================================================================

func TestGrant_ExtendWindow_KeepsEarliestStartAndLatestEnd(t *testing.T) {
	now := time.Now().UTC()
	start := now.Add(-48 * time.Hour)
	end := now.Add(24 * time.Hour)
	g := reconstructGrant(t, courseScope(t, 7), StatusActive, SourceKindCode, start, &end)

	newEnd := now.Add(30 * 24 * time.Hour)
	g.ExtendWindow(&newEnd, now)

	assert.Equal(t, start, g.StartAt(), "earliest start wins")
	require.NotNil(t, g.EndAt())
	assert.Equal(t, newEnd, *g.EndAt(), "latest end wins")
}

func TestGrant_ExtendWindow_ShorterReissueIsNoOp(t *testing.T) {
	now := time.Now().UTC()
	end := now.Add(30 * 24 * time.Hour)
	g := reconstructGrant(t, courseScope(t, 7), StatusActive, SourceKindCode, now.Add(-time.Hour), &end)

	shorter := now.Add(24 * time.Hour)
	g.ExtendWindow(&shorter, now)

	require.NotNil(t, g.EndAt())
	assert.Equal(t, end, *g.EndAt(), "a shorter reissue never shrinks the window")
}

func TestGrant_ExtendWindow_UnboundedWins(t *testing.T) {
	now := time.Now().UTC()
	end := now.Add(24 * time.Hour)
	g := reconstructGrant(t, courseScope(t, 7), StatusActive, SourceKindCode, now.Add(-time.Hour), &end)

	g.ExtendWindow(nil, now)
	assert.Nil(t, g.EndAt())

	// Once unbounded, a bounded reissue cannot narrow it back.
	bounded := now.Add(time.Hour)
	g.ExtendWindow(&bounded, now)
	assert.Nil(t, g.EndAt())
}

func TestGrant_ExtendWindow_Idempotent(t *testing.T) {
	now := time.Now().UTC()
	end := now.Add(24 * time.Hour)
	g := reconstructGrant(t, courseScope(t, 7), StatusActive, SourceKindCode, now.Add(-time.Hour), &end)

	start := g.StartAt()
	g.ExtendWindow(&end, now)
	g.ExtendWindow(&end, now)

	assert.Equal(t, start, g.StartAt())
	require.NotNil(t, g.EndAt())
	assert.Equal(t, end, *g.EndAt())
}

func TestGrant_ExtendWindow_ReactivatesExpired(t *testing.T) {
	now := time.Now().UTC()
	end := now.Add(-time.Hour)
	g := reconstructGrant(t, courseScope(t, 7), StatusExpired, SourceKindCode, now.Add(-48*time.Hour), &end)

	newEnd := now.Add(24 * time.Hour)
	g.ExtendWindow(&newEnd, now)

	assert.Equal(t, StatusActive, g.Status())
	assert.True(t, g.IsActive(now))
}

// =====================================================================
// TestGrant_Monotonicity
// =====================================================================

func TestGrant_ExtendingEndNeverRemovesAccess(t *testing.T) {
	now := time.Now().UTC()
	end := now.Add(time.Hour)
	g := reconstructGrant(t, courseScope(t, 7), StatusActive, SourceKindCode, now.Add(-time.Hour), &end)

	evalPoints := []time.Time{now, now.Add(30 * time.Minute), now.Add(2 * time.Hour), now.Add(48 * time.Hour)}
	before := make([]bool, len(evalPoints))
	for i, at := range evalPoints {
		before[i] = g.IsActive(at)
	}

	newEnd := now.Add(72 * time.Hour)
	g.ExtendWindow(&newEnd, now)

	for i, at := range evalPoints {
		if before[i] {
			assert.True(t, g.IsActive(at), "extension removed access at %v", at)
		}
	}
}

// =====================================================================
// TestIssuer_* (merge at issuance, backed by an in-memory fake)
// =====================================================================

type fakeGrantRepo struct {
	grants []*Grant
	nextID uint
}

func (f *fakeGrantRepo) Create(_ context.Context, g *Grant) error {
	f.nextID++
	_ = g.SetID(f.nextID)
	f.grants = append(f.grants, g)
	return nil
}

func (f *fakeGrantRepo) Update(_ context.Context, g *Grant) error { return nil }

func (f *fakeGrantRepo) GetBySID(_ context.Context, sid string) (*Grant, error) {
	for _, g := range f.grants {
		if g.SID() == sid {
			return g, nil
		}
	}
	return nil, ErrGrantNotFound
}

func (f *fakeGrantRepo) ActiveCourseGrant(_ context.Context, accountID, courseID uint, now time.Time) (*Grant, error) {
	for _, g := range f.grants {
		if g.AccountID() == accountID && g.Scope().Type() == ScopeTypeCourse &&
			g.Scope().CourseID() == courseID && g.UnlocksCourse(now) {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeGrantRepo) ActiveCardGrant(_ context.Context, accountID, cardID uint, now time.Time) (*Grant, error) {
	for _, g := range f.grants {
		if g.AccountID() == accountID && g.Scope().Type() == ScopeTypeCard &&
			g.Scope().CardID() == cardID && g.IsActive(now) {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeGrantRepo) ActiveMonthGrant(_ context.Context, accountID, courseID uint, monthNumber int, now time.Time) (*Grant, error) {
	for _, g := range f.grants {
		if g.AccountID() == accountID && g.Scope().Type() == ScopeTypeMonth &&
			g.Scope().CourseID() == courseID && g.Scope().MonthNumber() == monthNumber && g.IsActive(now) {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeGrantRepo) FindMergeable(_ context.Context, accountID uint, scope Scope) (*Grant, error) {
	for i := len(f.grants) - 1; i >= 0; i-- {
		g := f.grants[i]
		if g.AccountID() == accountID && g.Scope().Equal(scope) && g.Status() != StatusRevoked {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeGrantRepo) ListByAccount(_ context.Context, accountID uint) ([]*Grant, error) {
	var out []*Grant
	for _, g := range f.grants {
		if g.AccountID() == accountID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGrantRepo) MarkExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, g := range f.grants {
		if g.Status() == StatusActive && g.EndAt() != nil && !g.EndAt().After(now) {
			_ = g.Expire()
			n++
		}
	}
	return n, nil
}

func TestIssuer_CreatesFreshGrant(t *testing.T) {
	repo := &fakeGrantRepo{}
	issuer := NewIssuer(repo)

	end := time.Now().UTC().Add(30 * 24 * time.Hour)
	g, err := issuer.Issue(context.Background(), 10, courseScope(t, 7), SourceKindCode, &end)

	require.NoError(t, err)
	require.NotNil(t, g)
	assert.NotZero(t, g.ID())
	assert.NotEmpty(t, g.SID())
	assert.Len(t, repo.grants, 1)
}

func TestIssuer_MergesReissueIntoExistingGrant(t *testing.T) {
	repo := &fakeGrantRepo{}
	issuer := NewIssuer(repo)
	ctx := context.Background()
	scope := courseScope(t, 7)

	firstEnd := time.Now().UTC().Add(10 * 24 * time.Hour)
	first, err := issuer.Issue(ctx, 10, scope, SourceKindCode, &firstEnd)
	require.NoError(t, err)

	laterEnd := time.Now().UTC().Add(40 * 24 * time.Hour)
	second, err := issuer.Issue(ctx, 10, scope, SourceKindCode, &laterEnd)
	require.NoError(t, err)

	assert.Equal(t, first.ID(), second.ID(), "reissue must merge, not add a row")
	assert.Len(t, repo.grants, 1)
	require.NotNil(t, second.EndAt())
	assert.Equal(t, laterEnd, *second.EndAt())
}

func TestIssuer_RevokedGrantIsNotMergedInto(t *testing.T) {
	repo := &fakeGrantRepo{}
	issuer := NewIssuer(repo)
	ctx := context.Background()
	scope := courseScope(t, 7)

	first, err := issuer.Issue(ctx, 10, scope, SourceKindAdmin, nil)
	require.NoError(t, err)
	require.NoError(t, first.Revoke())

	second, err := issuer.Issue(ctx, 10, scope, SourceKindCode, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID(), second.ID(), "revocation is final; a reissue starts a fresh grant")
	assert.Len(t, repo.grants, 2)
}

func TestIssuer_DifferentScopesDoNotMerge(t *testing.T) {
	repo := &fakeGrantRepo{}
	issuer := NewIssuer(repo)
	ctx := context.Background()

	_, err := issuer.Issue(ctx, 10, courseScope(t, 7), SourceKindCode, nil)
	require.NoError(t, err)

	cardScope, err := CardScope(42)
	require.NoError(t, err)
	_, err = issuer.Issue(ctx, 10, cardScope, SourceKindCode, nil)
	require.NoError(t, err)

	assert.Len(t, repo.grants, 2)
}
