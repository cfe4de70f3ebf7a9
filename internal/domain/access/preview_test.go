package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtside/internal/domain/catalog"
	"courtside/internal/shared/logger"
	"courtside/internal/shared/services/markdown"
)

type fakeTreeSource struct {
	course     *catalog.Course
	allowlists map[[2]uint][]uint
	ageGroups  []*catalog.AgeGroup
	cards      map[uint][]*catalog.PlayerCard
	months     map[uint][]*catalog.TrainingMonth
	days       map[uint][]*catalog.TrainingDay
	videos     map[uint][]*catalog.Video
}

func (f *fakeTreeSource) GetCourse(ctx context.Context, id uint) (*catalog.Course, error) {
	if f.course != nil && f.course.ID == id {
		return f.course, nil
	}
	return nil, nil
}

func (f *fakeTreeSource) AllowedAgeGroups(ctx context.Context, packageID, courseID uint) ([]uint, error) {
	return f.allowlists[[2]uint{packageID, courseID}], nil
}

func (f *fakeTreeSource) ListAgeGroups(ctx context.Context, courseID uint) ([]*catalog.AgeGroup, error) {
	return f.ageGroups, nil
}

func (f *fakeTreeSource) ListPlayerCards(ctx context.Context, ageGroupID uint) ([]*catalog.PlayerCard, error) {
	return f.cards[ageGroupID], nil
}

func (f *fakeTreeSource) ListMonths(ctx context.Context, ageGroupID uint) ([]*catalog.TrainingMonth, error) {
	return f.months[ageGroupID], nil
}

func (f *fakeTreeSource) ListDays(ctx context.Context, monthID uint) ([]*catalog.TrainingDay, error) {
	return f.days[monthID], nil
}

func (f *fakeTreeSource) ListVideos(ctx context.Context, dayID uint) ([]*catalog.Video, error) {
	return f.videos[dayID], nil
}

// treeFixture builds course 1 with two age groups; group 10 holds one card
// and a month with one day carrying a free-preview video and a paid video.
func treeFixture() *fakeTreeSource {
	return &fakeTreeSource{
		course:     &catalog.Course{ID: 1, Slug: "fundamentals", Name: "Fundamentals", Published: true},
		allowlists: make(map[[2]uint][]uint),
		ageGroups: []*catalog.AgeGroup{
			{ID: 10, CourseID: 1, Name: "U12"},
			{ID: 11, CourseID: 1, Name: "U14"},
		},
		cards: map[uint][]*catalog.PlayerCard{
			10: {{ID: 100, AgeGroupID: 10, Name: "U12 / 150cm", ThumbnailURL: "https://cdn.example.com/card100.jpg"}},
		},
		months: map[uint][]*catalog.TrainingMonth{
			10: {{ID: 1000, AgeGroupID: 10, Number: 1, Title: "Month 1"}},
		},
		days: map[uint][]*catalog.TrainingDay{
			1000: {{ID: 2000, MonthID: 1000, Number: 1, Title: "Day 1"}},
		},
		videos: map[uint][]*catalog.Video{
			2000: {
				{ID: 3000, DayID: 2000, Title: "Warmup", URL: "https://cdn.example.com/v/3000", ThumbnailURL: "t3000", IsFreePreview: true},
				{ID: 3001, DayID: 2000, Title: "Drills", URL: "https://cdn.example.com/v/3001", ThumbnailURL: "t3001", Details: "**Focus**: footwork"},
			},
		},
	}
}

func newBuilder(source TreeSource) *TreeBuilder {
	return NewTreeBuilder(source, markdown.NewMarkdownService(), logger.NewLogger())
}

// Scenario: an anonymous caller asks for a paid video and gets the preview
// tree with that video present but its URL withheld.
func TestBuildPreview_WithholdsPaidURLs(t *testing.T) {
	builder := newBuilder(treeFixture())

	tree, err := builder.BuildPreview(context.Background(), ContentLocator{CourseID: 1})
	require.NoError(t, err)

	require.Len(t, tree.AgeGroups, 2)
	group := tree.AgeGroups[0]
	require.Len(t, group.Months, 1)
	require.Len(t, group.Months[0].Days, 1)
	videos := group.Months[0].Days[0].Videos
	require.Len(t, videos, 2)

	free, paid := videos[0], videos[1]
	assert.False(t, free.Locked)
	assert.Equal(t, "https://cdn.example.com/v/3000", free.URL)

	assert.True(t, paid.Locked)
	assert.Empty(t, paid.URL, "paid video URL must be withheld")
	assert.Empty(t, paid.DetailsHTML)
	assert.Equal(t, "Drills", paid.Title)
	assert.Equal(t, "t3001", paid.ThumbnailURL)
}

func TestBuildFull_PopulatesAllURLs(t *testing.T) {
	builder := newBuilder(treeFixture())

	tree, err := builder.BuildFull(context.Background(), ContentLocator{CourseID: 1})
	require.NoError(t, err)

	videos := tree.AgeGroups[0].Months[0].Days[0].Videos
	require.Len(t, videos, 2)
	for _, v := range videos {
		assert.False(t, v.Locked)
		assert.NotEmpty(t, v.URL)
	}
	assert.Contains(t, videos[1].DetailsHTML, "<strong>Focus</strong>")
}

func TestBuild_AllowlistFiltersAgeGroups(t *testing.T) {
	source := treeFixture()
	source.allowlists[[2]uint{5, 1}] = []uint{11}
	builder := newBuilder(source)

	tree, err := builder.BuildPreview(context.Background(), ContentLocator{CourseID: 1, PackageID: 5})
	require.NoError(t, err)

	require.Len(t, tree.AgeGroups, 1)
	assert.Equal(t, uint(11), tree.AgeGroups[0].ID)
}

func TestBuild_NarrowsToCard(t *testing.T) {
	builder := newBuilder(treeFixture())

	tree, err := builder.BuildFull(context.Background(), ContentLocator{CourseID: 1, AgeGroupID: 10, CardID: 100})
	require.NoError(t, err)

	require.Len(t, tree.AgeGroups, 1)
	require.Len(t, tree.AgeGroups[0].Cards, 1)
	assert.Equal(t, uint(100), tree.AgeGroups[0].Cards[0].ID)
}

func TestBuild_NarrowsToVideo(t *testing.T) {
	source := treeFixture()
	// A second day with its own video; narrowing must prune it.
	source.days[1000] = append(source.days[1000], &catalog.TrainingDay{ID: 2001, MonthID: 1000, Number: 2, Title: "Day 2"})
	source.videos[2001] = []*catalog.Video{{ID: 3002, DayID: 2001, Title: "Cooldown", URL: "https://cdn.example.com/v/3002"}}
	builder := newBuilder(source)

	tree, err := builder.BuildFull(context.Background(), ContentLocator{CourseID: 1, AgeGroupID: 10, VideoID: 3001})
	require.NoError(t, err)

	require.Len(t, tree.AgeGroups, 1)
	require.Len(t, tree.AgeGroups[0].Months, 1)
	days := tree.AgeGroups[0].Months[0].Days
	require.Len(t, days, 1)
	require.Len(t, days[0].Videos, 1)
	assert.Equal(t, uint(3001), days[0].Videos[0].ID)
	assert.Equal(t, "https://cdn.example.com/v/3001", days[0].Videos[0].URL)
}

func TestBuild_UnknownCourse(t *testing.T) {
	builder := newBuilder(treeFixture())

	_, err := builder.BuildPreview(context.Background(), ContentLocator{CourseID: 9})

	assert.ErrorIs(t, err, ErrContentNotFound)
}
