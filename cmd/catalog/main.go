package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-catalog-service/config"
	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds what every subcommand needs once the root command has run.
type app struct {
	cfg    *config.Config
	logger logger.ZapLogger
	db     *sqlx.DB
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Manage the product catalog database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context())
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.close()
		},
	}

	root.AddCommand(newMigrateCommand(a))
	root.AddCommand(newLoadFixturesCommand(a))
	root.AddCommand(newCreateSuperuserCommand(a))
	return root
}

func (a *app) setup(ctx context.Context) error {
	_ = godotenv.Load() // Load .env file if it exists
	a.cfg = config.LoadEnv()

	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          a.cfg.Logger.Encoding,
		Level:             a.cfg.Logger.Level,
		DisableCaller:     a.cfg.Logger.DisableCaller,
		DisableStacktrace: a.cfg.Logger.DisableStacktrace,
	}
	if a.cfg.Server.AppEnv == "development" || a.cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
	}
	a.logger = logger.NewZapLogger(logConfig)

	db, err := database.Open(ctx, &database.Config{
		Driver:          a.cfg.Database.Driver,
		DSN:             a.cfg.Database.DSN(),
		MaxOpenConns:    a.cfg.Database.MaxOpenConns,
		MaxIdleConns:    a.cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(a.cfg.Database.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(a.cfg.Database.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		a.logger.Error("Failed to connect to database", zap.String("driver", a.cfg.Database.Driver), zap.Error(err))
		return err
	}
	a.db = db
	a.logger.Info("Connected to database", zap.String("driver", a.cfg.Database.Driver))
	return nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
