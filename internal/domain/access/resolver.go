package access

import (
	"context"
	"sync"
	"time"

	"courtside/internal/domain/catalog"
	"courtside/internal/domain/grant"
	"courtside/internal/shared/logger"
)

// BanChecker reports whether an account is currently banned.
type BanChecker interface {
	IsAccountBanned(ctx context.Context, accountID uint) (bool, error)
}

// GrantLookup answers point-in-time grant existence questions.
type GrantLookup interface {
	ActiveCourseGrant(ctx context.Context, accountID, courseID uint, now time.Time) (*grant.Grant, error)
	ActiveCardGrant(ctx context.Context, accountID, cardID uint, now time.Time) (*grant.Grant, error)
	ActiveMonthGrant(ctx context.Context, accountID, courseID uint, monthNumber int, now time.Time) (*grant.Grant, error)
}

// CatalogLookup is the slice of the catalog the resolver needs: existence
// checks, the package allowlist, and the free-preview probe.
type CatalogLookup interface {
	GetCourse(ctx context.Context, id uint) (*catalog.Course, error)
	GetPackage(ctx context.Context, id uint) (*catalog.Package, error)
	GetAgeGroup(ctx context.Context, id uint) (*catalog.AgeGroup, error)
	GetPlayerCard(ctx context.Context, id uint) (*catalog.PlayerCard, error)
	GetMonth(ctx context.Context, ageGroupID uint, number int) (*catalog.TrainingMonth, error)
	GetMonthByID(ctx context.Context, id uint) (*catalog.TrainingMonth, error)
	GetDay(ctx context.Context, id uint) (*catalog.TrainingDay, error)
	GetVideo(ctx context.Context, id uint) (*catalog.Video, error)
	CountPackages(ctx context.Context, courseID uint) (int64, error)
	AllowedAgeGroups(ctx context.Context, packageID, courseID uint) ([]uint, error)
	HasFreePreview(ctx context.Context, courseID, ageGroupID uint, monthNumber int) (bool, error)
}

// Resolver decides what a viewer may see. It is stateless: every call is a
// pure read over its collaborators, so one instance serves all requests.
type Resolver struct {
	bans    BanChecker
	grants  GrantLookup
	catalog CatalogLookup
	logger  logger.Interface
}

// NewResolver creates an entitlement resolver.
func NewResolver(bans BanChecker, grants GrantLookup, cat CatalogLookup, log logger.Interface) *Resolver {
	return &Resolver{
		bans:    bans,
		grants:  grants,
		catalog: cat,
		logger:  log,
	}
}

// Resolve runs the access decision for one content request.
//
// The locator is resolved structurally first: rows that do not exist, and
// rows a package's allowlist filters out, yield ErrContentNotFound before any
// access rule is consulted, for every caller including administrators. The
// access rules then short-circuit top-down: admin bypass, anonymous preview,
// ban, package-selection policy, and finally the grant lookups.
func (r *Resolver) Resolve(ctx context.Context, identity Identity, locator ContentLocator) (*Resolution, error) {
	if err := locator.Validate(); err != nil {
		return nil, err
	}

	if err := r.resolveStructure(ctx, identity, locator); err != nil {
		return nil, err
	}

	if identity.IsAdmin {
		return &Resolution{Decision: DecisionFullAccess}, nil
	}

	if !identity.Authenticated {
		return r.resolveAnonymous(ctx, locator), nil
	}

	banned, err := r.bans.IsAccountBanned(ctx, identity.AccountID)
	if err != nil {
		// Fail closed: an unverifiable ban state must not grant access.
		return &Resolution{Decision: DecisionDenied, Reason: ReasonBanCheckFailed}, nil
	}
	if banned {
		return &Resolution{Decision: DecisionDenied, Reason: ReasonAccountBanned}, nil
	}

	if !locator.HasPackage() {
		count, err := r.catalog.CountPackages(ctx, locator.CourseID)
		if err != nil {
			r.logger.Warnw("package count lookup failed", "course_id", locator.CourseID, "error", err)
			count = 0
		}
		if count > 0 {
			return &Resolution{
				Decision:                 DecisionDenied,
				RequiresPackageSelection: true,
				Reason:                   ReasonPackageSelection,
			}, nil
		}
	}

	now := time.Now().UTC()
	courseGrant, cardGrant, monthGrant := r.lookupGrants(ctx, identity.AccountID, locator, now)

	if courseGrant != nil {
		return &Resolution{Decision: DecisionFullAccess}, nil
	}
	if locator.NarrowsToCard() && cardGrant != nil {
		return &Resolution{Decision: DecisionFullAccess}, nil
	}
	if locator.NarrowsToMonth() && monthGrant != nil {
		return &Resolution{Decision: DecisionFullAccess}, nil
	}

	return &Resolution{Decision: DecisionPreviewOnly}, nil
}

// resolveStructure validates that every row the locator names exists, hangs
// together, and survives the package allowlist.
func (r *Resolver) resolveStructure(ctx context.Context, identity Identity, locator ContentLocator) error {
	course, err := r.catalog.GetCourse(ctx, locator.CourseID)
	if err != nil {
		return err
	}
	if course == nil {
		return ErrContentNotFound
	}
	if !course.Published && !identity.IsAdmin {
		return ErrContentNotFound
	}

	ageGroupID := locator.AgeGroupID

	if locator.NarrowsToCard() {
		card, err := r.catalog.GetPlayerCard(ctx, locator.CardID)
		if err != nil {
			return err
		}
		if card == nil {
			return ErrContentNotFound
		}
		if ageGroupID != 0 && ageGroupID != card.AgeGroupID {
			return ErrContentNotFound
		}
		ageGroupID = card.AgeGroupID
	}

	if locator.NarrowsToVideo() {
		video, err := r.catalog.GetVideo(ctx, locator.VideoID)
		if err != nil {
			return err
		}
		if video == nil {
			return ErrContentNotFound
		}
		day, err := r.catalog.GetDay(ctx, video.DayID)
		if err != nil {
			return err
		}
		if day == nil {
			return ErrContentNotFound
		}
		month, err := r.catalog.GetMonthByID(ctx, day.MonthID)
		if err != nil {
			return err
		}
		if month == nil {
			return ErrContentNotFound
		}
		// The video's position must agree with every narrowing axis already
		// on the locator; the derived age group then flows into the course
		// linkage and allowlist checks below.
		if locator.NarrowsToMonth() && month.Number != locator.MonthNumber {
			return ErrContentNotFound
		}
		if ageGroupID != 0 && month.AgeGroupID != ageGroupID {
			return ErrContentNotFound
		}
		ageGroupID = month.AgeGroupID
	}

	if ageGroupID != 0 {
		group, err := r.catalog.GetAgeGroup(ctx, ageGroupID)
		if err != nil {
			return err
		}
		if group == nil || group.CourseID != locator.CourseID {
			return ErrContentNotFound
		}
	}

	if locator.NarrowsToMonth() && ageGroupID != 0 {
		month, err := r.catalog.GetMonth(ctx, ageGroupID, locator.MonthNumber)
		if err != nil {
			return err
		}
		if month == nil {
			return ErrContentNotFound
		}
	}

	if locator.HasPackage() {
		pkg, err := r.catalog.GetPackage(ctx, locator.PackageID)
		if err != nil {
			return err
		}
		if pkg == nil || !pkg.Active {
			return ErrContentNotFound
		}

		allowed, err := r.catalog.AllowedAgeGroups(ctx, locator.PackageID, locator.CourseID)
		if err != nil {
			return err
		}
		// Non-empty allowlist: age groups outside it do not exist through
		// this package, grants notwithstanding.
		if len(allowed) > 0 && ageGroupID != 0 && !containsID(allowed, ageGroupID) {
			return ErrContentNotFound
		}
	}

	return nil
}

func (r *Resolver) resolveAnonymous(ctx context.Context, locator ContentLocator) *Resolution {
	has, err := r.previewOnPath(ctx, locator)
	if err != nil {
		// Anonymous browsing degrades gracefully. The preview projection
		// withholds every non-preview URL, so serving it on a failed probe
		// leaks nothing.
		r.logger.Warnw("free preview lookup failed", "course_id", locator.CourseID, "error", err)
		return &Resolution{Decision: DecisionPreviewOnly}
	}
	if !has {
		return &Resolution{Decision: DecisionDenied, Reason: ReasonNoPreviewContent}
	}
	return &Resolution{Decision: DecisionPreviewOnly}
}

// previewOnPath reports whether free-preview content exists on the locator's
// narrowed path, not merely somewhere in the course.
func (r *Resolver) previewOnPath(ctx context.Context, locator ContentLocator) (bool, error) {
	if locator.NarrowsToVideo() {
		video, err := r.catalog.GetVideo(ctx, locator.VideoID)
		if err != nil {
			return false, err
		}
		return video != nil && video.IsFreePreview, nil
	}
	if locator.NarrowsToCard() {
		// Player cards carry no videos, so a card path never has preview
		// content.
		return false, nil
	}
	return r.catalog.HasFreePreview(ctx, locator.CourseID, locator.AgeGroupID, locator.MonthNumber)
}

// lookupGrants issues the course/card/month grant lookups concurrently and
// joins them. A failed lookup degrades to "no grant": the viewer falls back
// to the preview projection instead of surfacing a store error.
func (r *Resolver) lookupGrants(ctx context.Context, accountID uint, locator ContentLocator, now time.Time) (courseGrant, cardGrant, monthGrant *grant.Grant) {
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		g, err := r.grants.ActiveCourseGrant(ctx, accountID, locator.CourseID, now)
		if err != nil {
			r.logger.Warnw("course grant lookup failed", "account_id", accountID, "course_id", locator.CourseID, "error", err)
			return
		}
		courseGrant = g
	}()

	if locator.NarrowsToCard() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, err := r.grants.ActiveCardGrant(ctx, accountID, locator.CardID, now)
			if err != nil {
				r.logger.Warnw("card grant lookup failed", "account_id", accountID, "card_id", locator.CardID, "error", err)
				return
			}
			cardGrant = g
		}()
	}

	if locator.NarrowsToMonth() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, err := r.grants.ActiveMonthGrant(ctx, accountID, locator.CourseID, locator.MonthNumber, now)
			if err != nil {
				r.logger.Warnw("month grant lookup failed", "account_id", accountID, "month", locator.MonthNumber, "error", err)
				return
			}
			monthGrant = g
		}()
	}

	wg.Wait()
	return courseGrant, cardGrant, monthGrant
}

func containsID(ids []uint, id uint) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
