package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtside/internal/domain/grant"
	"courtside/internal/domain/redemption"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
)

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCodeRepo struct {
	mu    sync.Mutex
	codes map[string]*redemption.Code
	spent map[string]int
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{
		codes: make(map[string]*redemption.Code),
		spent: make(map[string]int),
	}
}

func (f *fakeCodeRepo) Create(ctx context.Context, code *redemption.Code) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes[code.Code()] = code
	return nil
}

func (f *fakeCodeRepo) CreateBatch(ctx context.Context, codes []*redemption.Code) error {
	for _, c := range codes {
		if err := f.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeCodeRepo) GetByCode(ctx context.Context, token string) (*redemption.Code, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.codes[token], nil
}

func (f *fakeCodeRepo) Consume(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	code, ok := f.codes[token]
	if !ok {
		return redemption.ErrCodeNotFound
	}
	if code.Redemptions()+f.spent[token] >= code.MaxRedemptions() {
		return redemption.ErrCodeExhausted
	}
	f.spent[token]++
	return nil
}

func (f *fakeCodeRepo) List(ctx context.Context, offset, limit int) ([]*redemption.Code, int64, error) {
	return nil, 0, nil
}

type fakeGrantStore struct {
	mu     sync.Mutex
	grants []*grant.Grant
}

func (f *fakeGrantStore) Create(ctx context.Context, g *grant.Grant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.grants = append(f.grants, g)
	return nil
}

func (f *fakeGrantStore) Update(ctx context.Context, g *grant.Grant) error { return nil }

func (f *fakeGrantStore) GetBySID(ctx context.Context, sid string) (*grant.Grant, error) {
	return nil, nil
}

func (f *fakeGrantStore) ActiveCourseGrant(ctx context.Context, accountID, courseID uint, now time.Time) (*grant.Grant, error) {
	return nil, nil
}

func (f *fakeGrantStore) ActiveCardGrant(ctx context.Context, accountID, cardID uint, now time.Time) (*grant.Grant, error) {
	return nil, nil
}

func (f *fakeGrantStore) ActiveMonthGrant(ctx context.Context, accountID, courseID uint, monthNumber int, now time.Time) (*grant.Grant, error) {
	return nil, nil
}

func (f *fakeGrantStore) FindMergeable(ctx context.Context, accountID uint, scope grant.Scope) (*grant.Grant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.grants) - 1; i >= 0; i-- {
		g := f.grants[i]
		if g.AccountID() == accountID && g.Scope().Equal(scope) && g.Status() != grant.StatusRevoked {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeGrantStore) ListByAccount(ctx context.Context, accountID uint) ([]*grant.Grant, error) {
	return nil, nil
}

func (f *fakeGrantStore) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func newRedeemUseCase(t *testing.T) (*fakeCodeRepo, *fakeGrantStore, *RedeemCodeUseCase) {
	t.Helper()
	codes := newFakeCodeRepo()
	grants := &fakeGrantStore{}
	uc := NewRedeemCodeUseCase(codes, grant.NewIssuer(grants), passthroughTx{}, logger.NewLogger())
	return codes, grants, uc
}

func seedCode(t *testing.T, repo *fakeCodeRepo, maxRedemptions int) string {
	t.Helper()
	code, err := redemption.NewCode(redemption.NewCodeParams{
		Code:           "rc_seeded",
		ScopeType:      redemption.ScopeTypeCourse,
		CourseID:       7,
		MaxRedemptions: maxRedemptions,
		DurationDays:   30,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), code))
	return code.Code()
}

func TestRedeemCode_Success(t *testing.T) {
	codes, grants, uc := newRedeemUseCase(t)
	token := seedCode(t, codes, 5)

	result, err := uc.Execute(context.Background(), RedeemCodeCommand{Code: token, AccountID: 42})

	require.NoError(t, err)
	assert.Equal(t, "course", result.ScopeType)
	assert.Equal(t, uint(7), result.CourseID)
	assert.NotEmpty(t, result.GrantSID)
	require.NotNil(t, result.AccessUntil)
	assert.InDelta(t, 30*24*time.Hour, time.Until(*result.AccessUntil), float64(time.Minute))

	require.Len(t, grants.grants, 1)
	assert.Equal(t, grant.SourceKindCode, grants.grants[0].SourceKind())
}

func TestRedeemCode_UnknownCode(t *testing.T) {
	_, _, uc := newRedeemUseCase(t)

	_, err := uc.Execute(context.Background(), RedeemCodeCommand{Code: "rc_nope", AccountID: 42})

	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestRedeemCode_Exhausted(t *testing.T) {
	codes, _, uc := newRedeemUseCase(t)
	token := seedCode(t, codes, 1)

	_, err := uc.Execute(context.Background(), RedeemCodeCommand{Code: token, AccountID: 42})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), RedeemCodeCommand{Code: token, AccountID: 43})
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

// Redeeming twice for the same account merges into one grant with the later
// expiry rather than stacking rows.
func TestRedeemCode_ReissueMerges(t *testing.T) {
	codes, grants, uc := newRedeemUseCase(t)
	token := seedCode(t, codes, 5)

	_, err := uc.Execute(context.Background(), RedeemCodeCommand{Code: token, AccountID: 42})
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), RedeemCodeCommand{Code: token, AccountID: 42})
	require.NoError(t, err)

	assert.Len(t, grants.grants, 1)
}

func TestRedeemCode_Validation(t *testing.T) {
	_, _, uc := newRedeemUseCase(t)

	_, err := uc.Execute(context.Background(), RedeemCodeCommand{Code: "", AccountID: 42})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), RedeemCodeCommand{Code: "rc_x", AccountID: 0})
	assert.True(t, errors.IsValidationError(err))
}
