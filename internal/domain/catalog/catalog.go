// Package catalog exposes the content hierarchy as a read model. Catalog rows
// are authored by external admin tooling; this subsystem only reads them, so
// the types are plain structs rather than guarded aggregates.
package catalog

import "time"

// Package groups courses for sale and may restrict which age groups of a
// course it exposes.
type Package struct {
	ID        uint
	Slug      string
	Name      string
	Active    bool
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Course is the top-level content unit.
type Course struct {
	ID        uint
	Slug      string
	Name      string
	Published bool
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgeGroup partitions a course. Both the player card axis and the training
// calendar axis hang off an age group.
type AgeGroup struct {
	ID        uint
	CourseID  uint
	Name      string
	SortOrder int
}

// PlayerCard is one age/height/weight profile bucket within an age group and
// the unit that individual access grants target.
type PlayerCard struct {
	ID           uint
	AgeGroupID   uint
	Name         string
	AgeRange     string
	HeightRange  string
	WeightRange  string
	ThumbnailURL string
	SortOrder    int
}

// TrainingMonth is a month of the training calendar within an age group.
type TrainingMonth struct {
	ID         uint
	AgeGroupID uint
	Number     int
	Title      string
	SortOrder  int
}

// TrainingDay is one day within a training month.
type TrainingDay struct {
	ID        uint
	MonthID   uint
	Number    int
	Title     string
	SortOrder int
}

// Video is the leaf content node.
type Video struct {
	ID            uint
	DayID         uint
	Title         string
	URL           string
	ThumbnailURL  string
	Details       string
	IsFreePreview bool
	SortOrder     int
}
