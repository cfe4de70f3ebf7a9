package models

import (
	"time"

	"courtside/internal/shared/constants"
)

// Catalog models are read-only here: external admin tooling owns these
// tables, this subsystem only queries them, so none appear in the
// auto-migrate list.

type PackageModel struct {
	ID        uint   `gorm:"primarykey"`
	Slug      string `gorm:"not null;size:100"`
	Name      string `gorm:"not null;size:255"`
	Active    bool   `gorm:"not null"`
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PackageModel) TableName() string {
	return constants.TablePackages
}

type CourseModel struct {
	ID        uint   `gorm:"primarykey"`
	Slug      string `gorm:"not null;size:100"`
	Name      string `gorm:"not null;size:255"`
	Published bool   `gorm:"not null;default:false"`
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CourseModel) TableName() string {
	return constants.TableCourses
}

type AgeGroupModel struct {
	ID        uint   `gorm:"primarykey"`
	CourseID  uint   `gorm:"not null;index"`
	Name      string `gorm:"not null;size:100"`
	SortOrder int
}

func (AgeGroupModel) TableName() string {
	return constants.TableAgeGroups
}

type PlayerCardModel struct {
	ID           uint   `gorm:"primarykey"`
	AgeGroupID   uint   `gorm:"not null;index"`
	Name         string `gorm:"not null;size:255"`
	AgeRange     string `gorm:"size:50"`
	HeightRange  string `gorm:"size:50"`
	WeightRange  string `gorm:"size:50"`
	ThumbnailURL string `gorm:"size:500"`
	SortOrder    int
}

func (PlayerCardModel) TableName() string {
	return constants.TablePlayerCards
}

type TrainingMonthModel struct {
	ID         uint   `gorm:"primarykey"`
	AgeGroupID uint   `gorm:"not null;index"`
	Number     int    `gorm:"not null"`
	Title      string `gorm:"size:255"`
	SortOrder  int
}

func (TrainingMonthModel) TableName() string {
	return constants.TableTrainingMonths
}

type TrainingDayModel struct {
	ID        uint   `gorm:"primarykey"`
	MonthID   uint   `gorm:"not null;index"`
	Number    int    `gorm:"not null"`
	Title     string `gorm:"size:255"`
	SortOrder int
}

func (TrainingDayModel) TableName() string {
	return constants.TableTrainingDays
}

type VideoModel struct {
	ID            uint   `gorm:"primarykey"`
	DayID         uint   `gorm:"not null;index"`
	Title         string `gorm:"not null;size:255"`
	URL           string `gorm:"size:500"`
	ThumbnailURL  string `gorm:"size:500"`
	Details       string `gorm:"type:text"`
	IsFreePreview bool   `gorm:"not null;default:false;index"`
	SortOrder     int
}

func (VideoModel) TableName() string {
	return constants.TableVideos
}

// PackageAgeGroupModel is the allowlist join table: rows for a
// (package, course) pair restrict visible age groups; no rows means
// unrestricted.
type PackageAgeGroupModel struct {
	ID         uint `gorm:"primarykey"`
	PackageID  uint `gorm:"not null;uniqueIndex:idx_pkg_course_group,priority:1"`
	CourseID   uint `gorm:"not null;uniqueIndex:idx_pkg_course_group,priority:2"`
	AgeGroupID uint `gorm:"not null;uniqueIndex:idx_pkg_course_group,priority:3"`
}

func (PackageAgeGroupModel) TableName() string {
	return constants.TablePackageAgeGroups
}
