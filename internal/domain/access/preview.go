package access

import (
	"context"

	"courtside/internal/domain/catalog"
	"courtside/internal/shared/logger"
)

// TreeSource is the catalog surface the tree builder reads.
type TreeSource interface {
	GetCourse(ctx context.Context, id uint) (*catalog.Course, error)
	AllowedAgeGroups(ctx context.Context, packageID, courseID uint) ([]uint, error)
	ListAgeGroups(ctx context.Context, courseID uint) ([]*catalog.AgeGroup, error)
	ListPlayerCards(ctx context.Context, ageGroupID uint) ([]*catalog.PlayerCard, error)
	ListMonths(ctx context.Context, ageGroupID uint) ([]*catalog.TrainingMonth, error)
	ListDays(ctx context.Context, monthID uint) ([]*catalog.TrainingDay, error)
	ListVideos(ctx context.Context, dayID uint) ([]*catalog.Video, error)
}

// DetailsRenderer turns a video's markdown details into sanitized HTML.
type DetailsRenderer interface {
	ToHTMLSanitized(markdown string) (string, error)
}

// ContentTree is the node shape served to viewers. Full and preview
// projections share it; only video locking differs.
type ContentTree struct {
	CourseID   uint            `json:"course_id"`
	CourseName string          `json:"course_name"`
	Slug       string          `json:"slug"`
	AgeGroups  []*AgeGroupNode `json:"age_groups"`
}

type AgeGroupNode struct {
	ID     uint         `json:"id"`
	Name   string       `json:"name"`
	Cards  []*CardNode  `json:"cards"`
	Months []*MonthNode `json:"months"`
}

type CardNode struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	AgeRange     string `json:"age_range"`
	HeightRange  string `json:"height_range"`
	WeightRange  string `json:"weight_range"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type MonthNode struct {
	Number int        `json:"number"`
	Title  string     `json:"title"`
	Days   []*DayNode `json:"days"`
}

type DayNode struct {
	Number int          `json:"number"`
	Title  string       `json:"title"`
	Videos []*VideoNode `json:"videos"`
}

// VideoNode is a video slot. Locked slots keep title and thumbnail so the UI
// can render "locked" rather than "missing", but never carry a playable URL.
type VideoNode struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
	DetailsHTML  string `json:"details_html,omitempty"`
	URL          string `json:"url,omitempty"`
	FreePreview  bool   `json:"free_preview"`
	Locked       bool   `json:"locked"`
}

// TreeBuilder assembles content trees. It performs no writes; both
// projections are pure reads over the catalog.
type TreeBuilder struct {
	source   TreeSource
	renderer DetailsRenderer
	logger   logger.Interface
}

// NewTreeBuilder creates a content tree builder.
func NewTreeBuilder(source TreeSource, renderer DetailsRenderer, log logger.Interface) *TreeBuilder {
	return &TreeBuilder{
		source:   source,
		renderer: renderer,
		logger:   log,
	}
}

// BuildPreview produces the restricted projection: the full card and
// month/day skeleton (under the package allowlist, if any), with playable
// URLs only on free-preview videos.
func (b *TreeBuilder) BuildPreview(ctx context.Context, locator ContentLocator) (*ContentTree, error) {
	return b.build(ctx, locator, false)
}

// BuildFull produces the unrestricted tree with every URL populated. The
// package allowlist still applies; entitlement never widens structure.
func (b *TreeBuilder) BuildFull(ctx context.Context, locator ContentLocator) (*ContentTree, error) {
	return b.build(ctx, locator, true)
}

func (b *TreeBuilder) build(ctx context.Context, locator ContentLocator, unlocked bool) (*ContentTree, error) {
	course, err := b.source.GetCourse(ctx, locator.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrContentNotFound
	}

	var allowed []uint
	if locator.HasPackage() {
		allowed, err = b.source.AllowedAgeGroups(ctx, locator.PackageID, locator.CourseID)
		if err != nil {
			return nil, err
		}
	}

	groups, err := b.source.ListAgeGroups(ctx, locator.CourseID)
	if err != nil {
		return nil, err
	}

	tree := &ContentTree{
		CourseID:   course.ID,
		CourseName: course.Name,
		Slug:       course.Slug,
		AgeGroups:  make([]*AgeGroupNode, 0, len(groups)),
	}

	for _, group := range groups {
		if len(allowed) > 0 && !containsID(allowed, group.ID) {
			continue
		}
		if locator.AgeGroupID != 0 && group.ID != locator.AgeGroupID {
			continue
		}

		node, err := b.buildAgeGroup(ctx, group, locator, unlocked)
		if err != nil {
			return nil, err
		}
		if locator.NarrowsToVideo() && len(node.Months) == 0 {
			continue
		}
		tree.AgeGroups = append(tree.AgeGroups, node)
	}

	return tree, nil
}

func (b *TreeBuilder) buildAgeGroup(ctx context.Context, group *catalog.AgeGroup, locator ContentLocator, unlocked bool) (*AgeGroupNode, error) {
	node := &AgeGroupNode{
		ID:   group.ID,
		Name: group.Name,
	}

	cards, err := b.source.ListPlayerCards(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	node.Cards = make([]*CardNode, 0, len(cards))
	for _, card := range cards {
		if locator.NarrowsToCard() && card.ID != locator.CardID {
			continue
		}
		node.Cards = append(node.Cards, &CardNode{
			ID:           card.ID,
			Name:         card.Name,
			AgeRange:     card.AgeRange,
			HeightRange:  card.HeightRange,
			WeightRange:  card.WeightRange,
			ThumbnailURL: card.ThumbnailURL,
		})
	}

	months, err := b.source.ListMonths(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	node.Months = make([]*MonthNode, 0, len(months))
	for _, month := range months {
		if locator.NarrowsToMonth() && month.Number != locator.MonthNumber {
			continue
		}
		monthNode, err := b.buildMonth(ctx, month, locator, unlocked)
		if err != nil {
			return nil, err
		}
		if locator.NarrowsToVideo() && len(monthNode.Days) == 0 {
			continue
		}
		node.Months = append(node.Months, monthNode)
	}

	return node, nil
}

func (b *TreeBuilder) buildMonth(ctx context.Context, month *catalog.TrainingMonth, locator ContentLocator, unlocked bool) (*MonthNode, error) {
	node := &MonthNode{
		Number: month.Number,
		Title:  month.Title,
	}

	days, err := b.source.ListDays(ctx, month.ID)
	if err != nil {
		return nil, err
	}
	node.Days = make([]*DayNode, 0, len(days))
	for _, day := range days {
		videos, err := b.source.ListVideos(ctx, day.ID)
		if err != nil {
			return nil, err
		}
		dayNode := &DayNode{
			Number: day.Number,
			Title:  day.Title,
			Videos: make([]*VideoNode, 0, len(videos)),
		}
		for _, video := range videos {
			if locator.NarrowsToVideo() && video.ID != locator.VideoID {
				continue
			}
			dayNode.Videos = append(dayNode.Videos, b.buildVideo(video, unlocked))
		}
		// Narrowing to a video prunes the days that do not contain it.
		if locator.NarrowsToVideo() && len(dayNode.Videos) == 0 {
			continue
		}
		node.Days = append(node.Days, dayNode)
	}

	return node, nil
}

func (b *TreeBuilder) buildVideo(video *catalog.Video, unlocked bool) *VideoNode {
	node := &VideoNode{
		ID:           video.ID,
		Title:        video.Title,
		ThumbnailURL: video.ThumbnailURL,
		FreePreview:  video.IsFreePreview,
	}

	if !unlocked && !video.IsFreePreview {
		node.Locked = true
		return node
	}

	node.URL = video.URL
	if video.Details != "" && b.renderer != nil {
		html, err := b.renderer.ToHTMLSanitized(video.Details)
		if err != nil {
			b.logger.Warnw("video details rendering failed", "video_id", video.ID, "error", err)
		} else {
			node.DetailsHTML = html
		}
	}
	return node
}
