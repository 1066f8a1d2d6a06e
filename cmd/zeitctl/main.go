// Command zeitctl is an operator tool for the time tracking backend. It works
// directly against the database with the same services the server uses.
//
//	zeitctl tree    --user <uuid>
//	zeitctl resolve --user <uuid> --area A --field F --activity X
//	zeitctl seed    --user <uuid> --file tree.yaml [--dry-run]
//	zeitctl token   --user <uuid> [--role admin]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/zeitdreher-backend/internal/adapter/postgres"
	"github.com/heartmarshall/zeitdreher-backend/internal/adapter/postgres/audit"
	categoryrepo "github.com/heartmarshall/zeitdreher-backend/internal/adapter/postgres/category"
	"github.com/heartmarshall/zeitdreher-backend/internal/app"
	"github.com/heartmarshall/zeitdreher-backend/internal/config"
	"github.com/heartmarshall/zeitdreher-backend/internal/service/category"
	"github.com/heartmarshall/zeitdreher-backend/internal/service/resolver"
	"github.com/heartmarshall/zeitdreher-backend/pkg/ctxutil"
)

var (
	configPath string
	userFlag   string
)

var rootCmd = &cobra.Command{
	Use:           "zeitctl",
	Short:         "Operator tool for the time tracking backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $CONFIG_PATH or config.yaml)")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "user ID the command acts for")

	rootCmd.AddCommand(treeCmd, resolveCmd, seedCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "zeitctl:", err)
		os.Exit(1)
	}
}

// env holds what the database-backed commands share.
type env struct {
	cfg        *config.Config
	log        *slog.Logger
	pool       *pgxpool.Pool
	categories *category.Service
	resolver   *resolver.Service
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// userContext returns ctx carrying the --user ID.
func userContext(ctx context.Context) (context.Context, error) {
	if userFlag == "" {
		return nil, fmt.Errorf("--user is required")
	}
	id, err := uuid.Parse(userFlag)
	if err != nil {
		return nil, fmt.Errorf("--user: %w", err)
	}
	return ctxutil.WithUserID(ctx, id), nil
}

func newEnv(ctx context.Context) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := app.NewLogger(cfg.Log)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	repo := categoryrepo.New(pool)
	cats := category.NewService(logger, repo, audit.New(pool), postgres.NewTxManager(pool), cfg.Category)

	return &env{
		cfg:        cfg,
		log:        logger,
		pool:       pool,
		categories: cats,
		resolver:   resolver.NewService(logger, repo, cats, cfg.Resolver, nil),
	}, nil
}

func (e *env) Close() { e.pool.Close() }
