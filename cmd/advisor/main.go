package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Advisor/internal/catalog"
	"github.com/MikeSquared-Agency/Advisor/internal/config"
	"github.com/MikeSquared-Agency/Advisor/internal/explain"
	"github.com/MikeSquared-Agency/Advisor/internal/feed"
	"github.com/MikeSquared-Agency/Advisor/internal/metrics"
	"github.com/MikeSquared-Agency/Advisor/internal/recommend"
	"github.com/MikeSquared-Agency/Advisor/internal/scoring"
	"github.com/MikeSquared-Agency/Advisor/internal/store"
	"github.com/MikeSquared-Agency/Advisor/internal/wizard"
)

var (
	cfgFile string
	envFile string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Vehicle advisor: filter, score and explain catalog matches",
	Long: `Advisor recommends vehicles from a catalog. It asks for a budget, fuel
type, seat count, brand and horsepower range, filters the catalog on those
answers, scores the survivors and explains the top matches.

Run "advisor wizard" for the interactive terminal, "advisor serve" for the
HTTP API, or "advisor import" to load a CSV into Postgres.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnvFile(envFile); err != nil {
			return err
		}
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		logger = newLogger(cfg.Logging)
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: defaults plus env vars)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")

	rootCmd.AddCommand(newWizardCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newImportCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger writes to stderr so the wizard's stdout stays clean.
func newLogger(lc config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(lc.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(lc.Format) == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// loadCatalog reads the configured source and cleans it.
func loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	var rows []catalog.Row
	switch cfg.Catalog.Source {
	case config.SourcePostgres:
		db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		if rows, err = db.CatalogRows(ctx); err != nil {
			return nil, err
		}
	case config.SourceHTTP:
		var err error
		client := feed.NewHTTPClient(cfg.Catalog.URL, cfg.Catalog.Token, catalog.Encoding(cfg.Catalog.Encoding))
		if rows, err = fetchRows(ctx, client); err != nil {
			return nil, err
		}
	default:
		var err error
		rows, err = catalog.LoadFile(cfg.Catalog.Path, catalog.Encoding(cfg.Catalog.Encoding))
		if err != nil {
			return nil, err
		}
	}

	cat := catalog.Build(rows, cfg.BuildOptions())
	if cat.Len() == 0 {
		return nil, fmt.Errorf("catalog from %s source has no usable vehicles (%d rows dropped)", cfg.Catalog.Source, cat.Dropped())
	}
	metrics.CatalogVehicles.Set(float64(cat.Len()))
	metrics.CatalogDropped.Set(float64(cat.Dropped()))
	logger.Info("catalog loaded", "source", cfg.Catalog.Source, "vehicles", cat.Len(), "dropped", cat.Dropped())
	return cat, nil
}

func fetchRows(ctx context.Context, c feed.Client) ([]catalog.Row, error) {
	rows, err := c.FetchRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog feed: %w", err)
	}
	return rows, nil
}

// newRecommender wires the scoring pipeline over cat. A zero seed picks a
// time-based one so explanations vary between runs.
func newRecommender(cat *catalog.Catalog) *recommend.Recommender {
	seed := cfg.Scoring.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	scorer := scoring.NewScorer(cfg.Weights(), logger)
	return recommend.New(cat, scorer, explain.NewGenerator(seed), recommend.Options{
		Limit:    cfg.Scoring.TopN,
		Frontier: cfg.Scoring.ParetoEnabled,
	}, logger)
}

func newWizardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Run the interactive recommendation wizard in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, err := loadCatalog(ctx)
			if err != nil {
				return err
			}
			term := wizard.NewTerminal(os.Stdin, os.Stdout, newRecommender(cat), logger)
			return term.Run(ctx)
		},
	}
}
