package usecases

import (
	"context"
	"fmt"

	"courtside/internal/domain/redemption"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/id"
	"courtside/internal/shared/logger"
)

const (
	maxBatchSize        = 500
	duplicateRetryLimit = 3
)

type GenerateCodesCommand struct {
	ScopeType      string
	CourseID       uint
	PackageID      uint
	CardID         uint
	Count          int
	MaxRedemptions int
	DurationDays   int
	CodeLength     int
}

type GenerateCodesResult struct {
	Codes []string `json:"codes"`
}

// GenerateCodesUseCase mints a batch of opaque redemption codes. Uniqueness
// is enforced by the store; a collision regenerates the batch with fresh
// tokens rather than failing the request.
type GenerateCodesUseCase struct {
	codes  redemption.Repository
	logger logger.Interface
}

func NewGenerateCodesUseCase(codes redemption.Repository, logger logger.Interface) *GenerateCodesUseCase {
	return &GenerateCodesUseCase{
		codes:  codes,
		logger: logger,
	}
}

func (uc *GenerateCodesUseCase) Execute(ctx context.Context, cmd GenerateCodesCommand) (*GenerateCodesResult, error) {
	if cmd.Count < 1 || cmd.Count > maxBatchSize {
		return nil, errors.NewValidationError(fmt.Sprintf("count must be between 1 and %d", maxBatchSize))
	}
	scopeType := redemption.ScopeType(cmd.ScopeType)
	if !scopeType.IsValid() {
		return nil, errors.NewValidationError("invalid scope type")
	}

	var lastErr error
	for attempt := 0; attempt < duplicateRetryLimit; attempt++ {
		batch, tokens, err := uc.buildBatch(cmd, scopeType)
		if err != nil {
			return nil, err
		}

		if err := uc.codes.CreateBatch(ctx, batch); err != nil {
			if errors.IsDuplicateError(err) {
				uc.logger.Warnw("code batch collided, regenerating", "attempt", attempt+1)
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("failed to persist codes: %w", err)
		}

		uc.logger.Infow("codes generated", "count", len(tokens), "scope_type", cmd.ScopeType)
		return &GenerateCodesResult{Codes: tokens}, nil
	}

	return nil, fmt.Errorf("failed to generate unique codes: %w", lastErr)
}

func (uc *GenerateCodesUseCase) buildBatch(cmd GenerateCodesCommand, scopeType redemption.ScopeType) ([]*redemption.Code, []string, error) {
	batch := make([]*redemption.Code, 0, cmd.Count)
	tokens := make([]string, 0, cmd.Count)

	for i := 0; i < cmd.Count; i++ {
		token, err := id.NewRedemptionCode(cmd.CodeLength)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate token: %w", err)
		}

		code, err := redemption.NewCode(redemption.NewCodeParams{
			Code:           token,
			ScopeType:      scopeType,
			CourseID:       cmd.CourseID,
			PackageID:      cmd.PackageID,
			CardID:         cmd.CardID,
			MaxRedemptions: cmd.MaxRedemptions,
			DurationDays:   cmd.DurationDays,
		})
		if err != nil {
			return nil, nil, errors.NewValidationError(err.Error())
		}

		batch = append(batch, code)
		tokens = append(tokens, token)
	}

	return batch, tokens, nil
}
