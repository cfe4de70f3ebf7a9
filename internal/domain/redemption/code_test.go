package redemption

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtside/internal/domain/grant"
)

// ============================================================================
// Construction
// ============================================================================

func TestNewCode_Course(t *testing.T) {
	code, err := NewCode(NewCodeParams{
		Code:           "rc_abc123",
		ScopeType:      ScopeTypeCourse,
		CourseID:       7,
		MaxRedemptions: 5,
		DurationDays:   30,
	})
	require.NoError(t, err)

	assert.Equal(t, "rc_abc123", code.Code())
	assert.Equal(t, ScopeTypeCourse, code.ScopeType())
	assert.Equal(t, uint(7), code.CourseID())
	assert.Equal(t, 5, code.MaxRedemptions())
	assert.Equal(t, 0, code.Redemptions())
	assert.False(t, code.IsExhausted())
	assert.Equal(t, 5, code.Remaining())
}

func TestNewCode_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params NewCodeParams
	}{
		{
			name:   "empty token",
			params: NewCodeParams{ScopeType: ScopeTypeCourse, CourseID: 1, MaxRedemptions: 1, DurationDays: 1},
		},
		{
			name:   "invalid scope type",
			params: NewCodeParams{Code: "rc_x", ScopeType: "subscription", CourseID: 1, MaxRedemptions: 1, DurationDays: 1},
		},
		{
			name:   "zero max redemptions",
			params: NewCodeParams{Code: "rc_x", ScopeType: ScopeTypeCourse, CourseID: 1, MaxRedemptions: 0, DurationDays: 1},
		},
		{
			name:   "zero duration",
			params: NewCodeParams{Code: "rc_x", ScopeType: ScopeTypeCourse, CourseID: 1, MaxRedemptions: 1, DurationDays: 0},
		},
		{
			name:   "course scope missing course",
			params: NewCodeParams{Code: "rc_x", ScopeType: ScopeTypeCourse, MaxRedemptions: 1, DurationDays: 1},
		},
		{
			name:   "package scope missing package",
			params: NewCodeParams{Code: "rc_x", ScopeType: ScopeTypePackageCourse, CourseID: 1, MaxRedemptions: 1, DurationDays: 1},
		},
		{
			name:   "card scope missing card",
			params: NewCodeParams{Code: "rc_x", ScopeType: ScopeTypeCard, MaxRedemptions: 1, DurationDays: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCode(tt.params)
			assert.Error(t, err)
		})
	}
}

// ============================================================================
// Budget
// ============================================================================

func TestCode_Exhaustion(t *testing.T) {
	code, err := ReconstructCode(ReconstructParams{
		ID:             1,
		Code:           "rc_full",
		ScopeType:      ScopeTypeCard,
		CardID:         3,
		MaxRedemptions: 2,
		Redemptions:    2,
		DurationDays:   14,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	})
	require.NoError(t, err)

	assert.True(t, code.IsExhausted())
	assert.Equal(t, 0, code.Remaining())
}

// ============================================================================
// Scope mapping
// ============================================================================

func TestCode_GrantScope(t *testing.T) {
	t.Run("course code mints course scope", func(t *testing.T) {
		code, err := NewCode(NewCodeParams{
			Code: "rc_c", ScopeType: ScopeTypeCourse, CourseID: 9,
			MaxRedemptions: 1, DurationDays: 7,
		})
		require.NoError(t, err)

		scope, err := code.GrantScope()
		require.NoError(t, err)
		want, _ := grant.CourseScope(9)
		assert.True(t, scope.Equal(want))
	})

	t.Run("package code still mints course scope", func(t *testing.T) {
		code, err := NewCode(NewCodeParams{
			Code: "rc_p", ScopeType: ScopeTypePackageCourse, CourseID: 9, PackageID: 2,
			MaxRedemptions: 1, DurationDays: 7,
		})
		require.NoError(t, err)

		scope, err := code.GrantScope()
		require.NoError(t, err)
		want, _ := grant.CourseScope(9)
		assert.True(t, scope.Equal(want))
	})

	t.Run("card code mints card scope", func(t *testing.T) {
		code, err := NewCode(NewCodeParams{
			Code: "rc_k", ScopeType: ScopeTypeCard, CardID: 5,
			MaxRedemptions: 1, DurationDays: 7,
		})
		require.NoError(t, err)

		scope, err := code.GrantScope()
		require.NoError(t, err)
		want, _ := grant.CardScope(5)
		assert.True(t, scope.Equal(want))
	})
}

func TestCode_GrantWindow(t *testing.T) {
	code, err := NewCode(NewCodeParams{
		Code: "rc_w", ScopeType: ScopeTypeCourse, CourseID: 1,
		MaxRedemptions: 1, DurationDays: 30,
	})
	require.NoError(t, err)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(30*24*time.Hour), code.GrantWindow(now))
}
