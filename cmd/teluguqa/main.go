package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/chaitu-2303/Q-A/internal/cache"
	"github.com/chaitu-2303/Q-A/internal/handler"
	appI18n "github.com/chaitu-2303/Q-A/internal/i18n"
	"github.com/chaitu-2303/Q-A/internal/metrics"
	"github.com/chaitu-2303/Q-A/internal/model"
	"github.com/chaitu-2303/Q-A/internal/pipeline"
	"github.com/chaitu-2303/Q-A/internal/ratelimit"
	"github.com/chaitu-2303/Q-A/internal/store"
)

//go:generate templ generate -path ../../internal/handler/views

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "teluguqa",
		Short:        "Generate difficulty-graded question and answer pairs from Telugu text",
		SilenceUsage: true,
	}

	serve := serveCmd()
	root.AddCommand(serve, generateCmd(), batchCmd(), exportCmd(), configCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `teluguqa --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	addServiceFlags(f)
	f.String("admin-token", "", "Bearer token for the history API (or set TELUGUQA_ADMIN_TOKEN)")
	return cmd
}

// addServiceFlags registers the flags that make up model.ServiceConfig.
func addServiceFlags(f *pflag.FlagSet) {
	f.StringP("addr", "a", ":5000", "HTTP listen address")
	f.String("db", "teluguqa.db", "SQLite history database path (empty disables history)")
	f.StringP("lang", "l", "en", "Default UI language (en, te)")
	f.IntP("num-questions", "n", 5, "Default number of questions when a request omits num_questions")
	addMaxQuestionsFlag(f)
	f.Duration("cache-ttl", 10*time.Minute, "Response cache TTL (0 disables caching)")
	f.Float64("rate-limit", 5, "Generate requests per second per client (0 disables)")
	f.Int("rate-burst", 10, "Rate limiter burst size")
	f.StringSlice("cors-origins", []string{"*"}, "Allowed CORS origins")
	addLogFlags(f)
}

func addMaxQuestionsFlag(f *pflag.FlagSet) {
	f.Int("max-questions", 100, fmt.Sprintf("Largest num_questions accepted per request (at most %d)", pipeline.MaxQuestions))
}

func addLogFlags(f *pflag.FlagSet) {
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("TELUGUQA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("teluguqa")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/teluguqa")
	v.AddConfigPath("/etc/teluguqa")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func serviceConfig(v *viper.Viper) model.ServiceConfig {
	return model.ServiceConfig{
		Addr:                v.GetString("addr"),
		DB:                  v.GetString("db"),
		Lang:                v.GetString("lang"),
		DefaultNumQuestions: v.GetInt("num-questions"),
		MaxNumQuestions:     maxQuestions(v),
		CacheTTL:            v.GetDuration("cache-ttl"),
		RateLimit:           v.GetFloat64("rate-limit"),
		RateBurst:           v.GetInt("rate-burst"),
		CORSOrigins:         v.GetStringSlice("cors-origins"),
		LogLevel:            v.GetString("log-level"),
		LogFormat:           v.GetString("log-format"),
	}
}

// maxQuestions reads --max-questions, clamped to what the pipeline accepts.
func maxQuestions(v *viper.Viper) int {
	n := v.GetInt("max-questions")
	if n <= 0 || n > pipeline.MaxQuestions {
		return pipeline.MaxQuestions
	}
	return n
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)
	cfg := serviceConfig(v)

	if err := appI18n.Init(cfg.Lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}
	metrics.Init()

	var db *store.Store
	if cfg.DB != "" {
		var err error
		db, err = store.New(cfg.DB)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		if token := v.GetString("admin-token"); token != "" {
			if err := handler.SetAdminToken(db, token); err != nil {
				return fmt.Errorf("set admin token: %w", err)
			}
			slog.Info("admin token configured")
		}
	} else if v.GetString("admin-token") != "" {
		slog.Warn("admin token ignored: history is disabled")
	}

	var respCache cache.Cache
	if cfg.CacheTTL > 0 {
		respCache = cache.NewMemoryCache(cfg.CacheTTL, 2*cfg.CacheTTL)
	}

	var limiter *ratelimit.Limiter
	if cfg.RateLimit > 0 {
		limiter = ratelimit.New(cfg.RateLimit, cfg.RateBurst)
	}

	h := handler.New(pipeline.NewGenerator(slog.Default()), db, respCache, limiter, cfg)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Accept-Language"},
		ExposedHeaders: []string{"X-Generation-ID", "X-Cache"},
		MaxAge:         300,
	}).Handler)
	r.Use(appI18n.Middleware(cfg.Lang))
	h.Routes(r)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if limiter != nil {
		go limiter.Run(ctx, time.Minute, 10*time.Minute)
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			"addr", cfg.Addr,
			"lang", cfg.Lang,
			"history", db != nil,
			"cache_ttl", cfg.CacheTTL,
			"rate_limit", cfg.RateLimit,
			"default_num_questions", cfg.DefaultNumQuestions,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
