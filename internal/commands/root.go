package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marvinpacsands/Project-List-Designers/config"
	"github.com/marvinpacsands/Project-List-Designers/internal/repository"
	"github.com/marvinpacsands/Project-List-Designers/internal/service"
	applogger "github.com/marvinpacsands/Project-List-Designers/pkg/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "boardctl",
	Short: "Maintenance commands for the project board",
	Long: `boardctl runs maintenance tasks against the board store configured for the
server: recompacting designer priorities, exporting the board to a spreadsheet,
and applying database migrations.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// env is what a command needs to reach the board
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  repository.Store
	svc    *service.Service
}

func (e *env) close() {
	if e.store != nil {
		e.store.Close()
	}
	e.logger.Sync()
}

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

func openEnv() (*env, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := repository.OpenStore(cfg, logger)
	if err != nil {
		logger.Sync()
		return nil, err
	}
	svc := service.NewService(cfg, repository.NewRepository(store), logger)
	return &env{cfg: cfg, logger: logger, store: store, svc: svc}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config/config.yaml or ./config.yaml)")

	rootCmd.AddCommand(rebalanceCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(migrateCmd)
}
