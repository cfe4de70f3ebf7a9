package mappers

import (
	"courtside/internal/domain/catalog"
	"courtside/internal/infrastructure/persistence/models"
)

// Catalog rows map to plain read-model structs, so the conversions are
// total and never fail.

func ToPackage(m *models.PackageModel) *catalog.Package {
	if m == nil {
		return nil
	}
	return &catalog.Package{
		ID:        m.ID,
		Slug:      m.Slug,
		Name:      m.Name,
		Active:    m.Active,
		SortOrder: m.SortOrder,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToCourse(m *models.CourseModel) *catalog.Course {
	if m == nil {
		return nil
	}
	return &catalog.Course{
		ID:        m.ID,
		Slug:      m.Slug,
		Name:      m.Name,
		Published: m.Published,
		SortOrder: m.SortOrder,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToAgeGroup(m *models.AgeGroupModel) *catalog.AgeGroup {
	if m == nil {
		return nil
	}
	return &catalog.AgeGroup{
		ID:        m.ID,
		CourseID:  m.CourseID,
		Name:      m.Name,
		SortOrder: m.SortOrder,
	}
}

func ToAgeGroups(ms []*models.AgeGroupModel) []*catalog.AgeGroup {
	out := make([]*catalog.AgeGroup, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToAgeGroup(m))
	}
	return out
}

func ToPlayerCard(m *models.PlayerCardModel) *catalog.PlayerCard {
	if m == nil {
		return nil
	}
	return &catalog.PlayerCard{
		ID:           m.ID,
		AgeGroupID:   m.AgeGroupID,
		Name:         m.Name,
		AgeRange:     m.AgeRange,
		HeightRange:  m.HeightRange,
		WeightRange:  m.WeightRange,
		ThumbnailURL: m.ThumbnailURL,
		SortOrder:    m.SortOrder,
	}
}

func ToPlayerCards(ms []*models.PlayerCardModel) []*catalog.PlayerCard {
	out := make([]*catalog.PlayerCard, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToPlayerCard(m))
	}
	return out
}

func ToTrainingMonth(m *models.TrainingMonthModel) *catalog.TrainingMonth {
	if m == nil {
		return nil
	}
	return &catalog.TrainingMonth{
		ID:         m.ID,
		AgeGroupID: m.AgeGroupID,
		Number:     m.Number,
		Title:      m.Title,
		SortOrder:  m.SortOrder,
	}
}

func ToTrainingMonths(ms []*models.TrainingMonthModel) []*catalog.TrainingMonth {
	out := make([]*catalog.TrainingMonth, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToTrainingMonth(m))
	}
	return out
}

func ToTrainingDay(m *models.TrainingDayModel) *catalog.TrainingDay {
	if m == nil {
		return nil
	}
	return &catalog.TrainingDay{
		ID:        m.ID,
		MonthID:   m.MonthID,
		Number:    m.Number,
		Title:     m.Title,
		SortOrder: m.SortOrder,
	}
}

func ToTrainingDays(ms []*models.TrainingDayModel) []*catalog.TrainingDay {
	out := make([]*catalog.TrainingDay, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToTrainingDay(m))
	}
	return out
}

func ToVideo(m *models.VideoModel) *catalog.Video {
	if m == nil {
		return nil
	}
	return &catalog.Video{
		ID:            m.ID,
		DayID:         m.DayID,
		Title:         m.Title,
		URL:           m.URL,
		ThumbnailURL:  m.ThumbnailURL,
		Details:       m.Details,
		IsFreePreview: m.IsFreePreview,
		SortOrder:     m.SortOrder,
	}
}

func ToVideos(ms []*models.VideoModel) []*catalog.Video {
	out := make([]*catalog.Video, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToVideo(m))
	}
	return out
}
