package catalog

import "context"

// Repository defines read access to the content hierarchy.
//
// Get* methods return (nil, nil) when the row does not exist; lookups for
// absent rows are an expected outcome, not an error.
type Repository interface {
	// GetPackage retrieves a package by ID
	GetPackage(ctx context.Context, id uint) (*Package, error)
	// GetCourse retrieves a course by ID
	GetCourse(ctx context.Context, id uint) (*Course, error)
	// GetAgeGroup retrieves an age group by ID
	GetAgeGroup(ctx context.Context, id uint) (*AgeGroup, error)
	// GetPlayerCard retrieves a player card by ID
	GetPlayerCard(ctx context.Context, id uint) (*PlayerCard, error)
	// GetMonth retrieves the training month with the given number inside an age group
	GetMonth(ctx context.Context, ageGroupID uint, number int) (*TrainingMonth, error)
	// GetMonthByID retrieves a training month by primary key
	GetMonthByID(ctx context.Context, id uint) (*TrainingMonth, error)
	// GetDay retrieves a training day by ID
	GetDay(ctx context.Context, id uint) (*TrainingDay, error)
	// GetVideo retrieves a video by ID
	GetVideo(ctx context.Context, id uint) (*Video, error)

	// CountPackages returns how many active packages expose the course
	CountPackages(ctx context.Context, courseID uint) (int64, error)
	// AllowedAgeGroups returns the age group IDs the package exposes for the
	// course. An empty slice means the package does not restrict the course
	// and every age group is visible.
	AllowedAgeGroups(ctx context.Context, packageID, courseID uint) ([]uint, error)

	// ListAgeGroups returns a course's age groups in display order
	ListAgeGroups(ctx context.Context, courseID uint) ([]*AgeGroup, error)
	// ListPlayerCards returns an age group's player cards in display order
	ListPlayerCards(ctx context.Context, ageGroupID uint) ([]*PlayerCard, error)
	// ListMonths returns an age group's training months in display order
	ListMonths(ctx context.Context, ageGroupID uint) ([]*TrainingMonth, error)
	// ListDays returns a month's training days in display order
	ListDays(ctx context.Context, monthID uint) ([]*TrainingDay, error)
	// ListVideos returns a day's videos in display order
	ListVideos(ctx context.Context, dayID uint) ([]*Video, error)

	// HasFreePreview reports whether any free-preview video exists under the
	// course, narrowed to one age group and/or month number when those
	// arguments are non-zero.
	HasFreePreview(ctx context.Context, courseID, ageGroupID uint, monthNumber int) (bool, error)
}
