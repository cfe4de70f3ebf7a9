package sweep

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"courtside/internal/application/entitlement/usecases"
	"courtside/internal/infrastructure/config"
	"courtside/internal/infrastructure/database"
	"courtside/internal/infrastructure/repository"
	"courtside/internal/shared/logger"
)

var env string

// NewCommand builds the grant expiry sweep. It is meant to run from cron;
// resolution never depends on it because expiry is also checked per-request.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Mark overdue grants as expired",
		Long:  `Scan for active grants whose access window has ended and mark them expired. Safe to run repeatedly.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	log := logger.NewLogger()
	grantRepo := repository.NewGrantRepository(database.Get(), log)
	sweepUC := usecases.NewExpireSweepUseCase(grantRepo, log)

	result, err := sweepUC.Execute(context.Background())
	if err != nil {
		log.Errorw("expiry sweep failed", "error", err)
		return fmt.Errorf("expiry sweep failed: %w", err)
	}

	log.Infow("expiry sweep completed", "expired", result.Expired)
	return nil
}
