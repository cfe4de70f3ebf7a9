package usecases

import (
	"context"
	"fmt"
	"time"

	"courtside/internal/domain/redemption"
	"courtside/internal/shared/logger"
)

type ListCodesQuery struct {
	Page     int
	PageSize int
}

type CodeSummary struct {
	ID             uint      `json:"id"`
	Code           string    `json:"code"`
	ScopeType      string    `json:"scope_type"`
	CourseID       uint      `json:"course_id,omitempty"`
	PackageID      uint      `json:"package_id,omitempty"`
	CardID         uint      `json:"card_id,omitempty"`
	MaxRedemptions int       `json:"max_redemptions"`
	Redemptions    int       `json:"redemptions"`
	Remaining      int       `json:"remaining"`
	DurationDays   int       `json:"duration_days"`
	CreatedAt      time.Time `json:"created_at"`
}

type ListCodesResult struct {
	Codes []CodeSummary `json:"codes"`
	Total int64         `json:"total"`
}

type ListCodesUseCase struct {
	codes  redemption.Repository
	logger logger.Interface
}

func NewListCodesUseCase(codes redemption.Repository, logger logger.Interface) *ListCodesUseCase {
	return &ListCodesUseCase{
		codes:  codes,
		logger: logger,
	}
}

func (uc *ListCodesUseCase) Execute(ctx context.Context, query ListCodesQuery) (*ListCodesResult, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	codes, total, err := uc.codes.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list codes: %w", err)
	}

	result := &ListCodesResult{
		Codes: make([]CodeSummary, 0, len(codes)),
		Total: total,
	}
	for _, code := range codes {
		result.Codes = append(result.Codes, CodeSummary{
			ID:             code.ID(),
			Code:           code.Code(),
			ScopeType:      code.ScopeType().String(),
			CourseID:       code.CourseID(),
			PackageID:      code.PackageID(),
			CardID:         code.CardID(),
			MaxRedemptions: code.MaxRedemptions(),
			Redemptions:    code.Redemptions(),
			Remaining:      code.Remaining(),
			DurationDays:   code.DurationDays(),
			CreatedAt:      code.CreatedAt(),
		})
	}
	return result, nil
}
