package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"hmis/m/domain"
	"hmis/m/internal/api"
	"hmis/m/internal/charge"
	"hmis/m/internal/config"
	"hmis/m/internal/database"
	"hmis/m/internal/datasource"
	"hmis/m/internal/logging"
	"hmis/m/internal/metrics"
	"hmis/m/internal/migrations"
	"hmis/m/internal/seed"
	"hmis/m/internal/submission"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hmis-server",
		Short: "Hospital information system API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(totalsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			db, err := database.Connect(cfg.DBDriver, cfg.DatabaseDSN)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := migrations.Run(db); err != nil {
				return err
			}
			logger.Info().Str("driver", cfg.DBDriver).Msg("migrations applied")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var (
		catalog string
		lists   bool
		seedVal int64
		rows    int
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the service catalog and optionally generated list records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if catalog == "" {
				catalog = cfg.CatalogCSV
			}
			if _, err := seed.LoadCatalog(cmd.Context(), db, catalog, logger); err != nil {
				return err
			}
			if !lists {
				return nil
			}
			if !cmd.Flags().Changed("seed") {
				seedVal = cfg.MockSeed
			}
			if !cmd.Flags().Changed("rows") {
				rows = cfg.MockRows
			}
			return seed.LoadLists(cmd.Context(), db, seedVal, rows, logger)
		},
	}
	cmd.Flags().StringVar(&catalog, "catalog", "", "catalog CSV path (defaults to CATALOG_CSV)")
	cmd.Flags().BoolVar(&lists, "lists", false, "also fill the list tables with generated records")
	cmd.Flags().Int64Var(&seedVal, "seed", 0, "generator seed (defaults to MOCK_SEED)")
	cmd.Flags().IntVar(&rows, "rows", 0, "records per list (defaults to MOCK_ROWS)")
	return cmd
}

func totalsCmd() *cobra.Command {
	var (
		items         []string
		discountType  string
		discountValue float64
		paid          float64
	)
	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Price line items given as rate,quantity[,discount_absolute[,discount_percent]]",
		RunE: func(cmd *cobra.Command, args []string) error {
			if discountType != charge.DiscountPercent && discountType != charge.DiscountAmount {
				return fmt.Errorf("--discount-type %q: want %s or %s", discountType, charge.DiscountPercent, charge.DiscountAmount)
			}
			if !finite(discountValue) || discountValue < 0 {
				return fmt.Errorf("--discount %v: must be a finite non-negative number", discountValue)
			}
			if !finite(paid) || paid < 0 {
				return fmt.Errorf("--paid %v: must be a finite non-negative number", paid)
			}
			lineItems := make([]domain.LineItem, 0, len(items))
			for _, raw := range items {
				li, err := parseItem(raw)
				if err != nil {
					return err
				}
				lineItems = append(lineItems, li)
			}
			out := struct {
				Items      []domain.LineItem  `json:"items"`
				Totals     domain.Totals      `json:"totals"`
				Settlement *domain.Settlement `json:"settlement,omitempty"`
			}{Items: lineItems, Totals: charge.ComputeTotals(lineItems, discountType, discountValue)}
			if cmd.Flags().Changed("paid") {
				s := charge.Settle(out.Totals.GrandTotal, paid)
				out.Settlement = &s
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringArrayVar(&items, "item", nil, "line item as rate,quantity[,discount_absolute[,discount_percent]]")
	cmd.Flags().StringVar(&discountType, "discount-type", charge.DiscountPercent, "overall discount type: percent or amount")
	cmd.Flags().Float64Var(&discountValue, "discount", 0, "overall discount value")
	cmd.Flags().Float64Var(&paid, "paid", 0, "amount paid, to compute due or change")
	return cmd
}

func parseItem(raw string) (domain.LineItem, error) {
	parts := strings.Split(raw, ",")
	if len(parts) < 2 || len(parts) > 4 {
		return domain.LineItem{}, fmt.Errorf("item %q: want rate,quantity[,discount_absolute[,discount_percent]]", raw)
	}
	qty, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("item %q: quantity: %w", raw, err)
	}
	// rate, discount_absolute, discount_percent
	nums := make([]float64, 3)
	for i, p := range append(parts[:1:1], parts[2:]...) {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return domain.LineItem{}, fmt.Errorf("item %q: %w", raw, err)
		}
		if !finite(v) {
			return domain.LineItem{}, fmt.Errorf("item %q: %v is not a finite number", raw, v)
		}
		nums[i] = v
	}
	li := domain.LineItem{
		Rate:             nums[0],
		Quantity:         qty,
		DiscountAbsolute: nums[1],
		DiscountPercent:  nums[2],
	}
	li.Amount = charge.ComputeAmount(li.Quantity, li.Rate, li.DiscountAbsolute, li.DiscountPercent)
	return li, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logging.New(cfg.Env, cfg.LogLevel), nil
}

func openDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := database.Connect(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func buildLists(cfg *config.Config, db *sqlx.DB) (*datasource.Registry, error) {
	var sources map[string]datasource.Source
	switch cfg.DataSource {
	case "sql":
		sources = datasource.SQLSources(db)
	case "csv":
		sources = datasource.CSVSources(cfg.CSVDir)
	default:
		sources = datasource.MockSources(cfg.MockSeed, cfg.MockRows)
	}
	reg := datasource.NewRegistry()
	if err := reg.RegisterAll(sources); err != nil {
		return nil, err
	}
	return reg, nil
}

func buildSink(cfg *config.Config, db *sqlx.DB, logger zerolog.Logger) (submission.Sink, datasource.Source, func() error) {
	switch cfg.Sink {
	case "sql":
		return submission.NewSQLSink(db), datasource.OrdersSource(db), func() error { return nil }
	case "kafka":
		k := submission.NewKafkaSink(cfg.KafkaBroker, cfg.KafkaTopic)
		return k, nil, k.Close
	default:
		return submission.NewLogSink(logger), nil, func() error { return nil }
	}
}

func runServer() error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	logger.Info().Str("driver", cfg.DBDriver).Msg("connected to database")

	if _, err := seed.LoadCatalog(context.Background(), db, cfg.CatalogCSV, logger); err != nil {
		logger.Warn().Err(err).Msg("catalog not loaded")
	}

	lists, err := buildLists(cfg, db)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build list sources")
	}
	sink, orders, closeSink := buildSink(cfg, db, logger)
	defer func() {
		if err := closeSink(); err != nil {
			logger.Error().Err(err).Msg("closing sink")
		}
	}()

	handler := api.New(db, cfg.Secret, api.Options{
		Lists:       lists,
		Sink:        sink,
		Metrics:     metrics.NewRegistry(),
		Logger:      logger,
		Orders:      orders,
		SessionTTL:  cfg.SessionTTL,
		CORSOrigins: cfg.CORSOrigins,
	})

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	handler.StartJanitor(ctx, cfg.SessionTTL/2)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("data_source", cfg.DataSource).Str("sink", cfg.Sink).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
