package usecases

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"
	"time"

	"courtside/internal/domain/grant"
	"courtside/internal/domain/redemption"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
)

// TransactionRunner runs a function inside a storage transaction.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type RedeemCodeCommand struct {
	Code      string
	AccountID uint
}

type RedeemCodeResult struct {
	ScopeType   string     `json:"scope_type"`
	CourseID    uint       `json:"course_id,omitempty"`
	PackageID   uint       `json:"package_id,omitempty"`
	CardID      uint       `json:"card_id,omitempty"`
	GrantSID    string     `json:"grant_sid"`
	AccessUntil *time.Time `json:"access_until"`
}

// RedeemCodeUseCase spends one redemption of a code and issues the matching
// grant. The conditional budget decrement and the grant write run in one
// transaction: two racing redeemers of a nearly exhausted code cannot both
// win, and a failed issuance rolls the decrement back so a consumed
// redemption always has a grant to show for it.
type RedeemCodeUseCase struct {
	codes     redemption.Repository
	issuer    *grant.Issuer
	txManager TransactionRunner
	logger    logger.Interface
}

func NewRedeemCodeUseCase(
	codes redemption.Repository,
	issuer *grant.Issuer,
	txManager TransactionRunner,
	logger logger.Interface,
) *RedeemCodeUseCase {
	return &RedeemCodeUseCase{
		codes:     codes,
		issuer:    issuer,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *RedeemCodeUseCase) Execute(ctx context.Context, cmd RedeemCodeCommand) (*RedeemCodeResult, error) {
	token := strings.TrimSpace(cmd.Code)
	if token == "" {
		return nil, errors.NewValidationError("code is required")
	}
	if cmd.AccountID == 0 {
		return nil, errors.NewValidationError("account ID is required")
	}

	var result *RedeemCodeResult
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		code, err := uc.codes.GetByCode(txCtx, token)
		if err != nil {
			return fmt.Errorf("failed to look up code: %w", err)
		}
		if code == nil {
			return errors.NewNotFoundError("redemption code not found")
		}
		if code.IsExhausted() {
			return errors.NewConflictError("redemption code exhausted")
		}

		if err := uc.codes.Consume(txCtx, token); err != nil {
			switch {
			case goerrors.Is(err, redemption.ErrCodeNotFound):
				return errors.NewNotFoundError("redemption code not found")
			case goerrors.Is(err, redemption.ErrCodeExhausted):
				// Lost the race for the last redemption.
				return errors.NewConflictError("redemption code exhausted")
			default:
				return fmt.Errorf("failed to consume code: %w", err)
			}
		}

		scope, err := code.GrantScope()
		if err != nil {
			return fmt.Errorf("failed to derive grant scope: %w", err)
		}

		endAt := code.GrantWindow(time.Now().UTC())
		issued, err := uc.issuer.Issue(txCtx, cmd.AccountID, scope, grant.SourceKindCode, &endAt)
		if err != nil {
			return fmt.Errorf("failed to issue grant: %w", err)
		}

		result = &RedeemCodeResult{
			ScopeType:   code.ScopeType().String(),
			CourseID:    code.CourseID(),
			PackageID:   code.PackageID(),
			CardID:      code.CardID(),
			GrantSID:    issued.SID(),
			AccessUntil: issued.EndAt(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("code redeemed",
		"account_id", cmd.AccountID,
		"scope_type", result.ScopeType,
		"grant_sid", result.GrantSID,
	)
	return result, nil
}
