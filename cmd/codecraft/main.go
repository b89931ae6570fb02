// Command codecraft is the admin CLI. It keeps its session in a local SQLite
// file, so a login persists across invocations.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/codecraft/backend/internal/config"
	"github.com/codecraft/backend/internal/fallback"
	"github.com/codecraft/backend/internal/kv"
	"github.com/codecraft/backend/internal/logging"
	"github.com/codecraft/backend/internal/repository"
	"github.com/codecraft/backend/internal/service"
	"github.com/codecraft/backend/internal/session"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app is everything a command needs, opened once per invocation.
type app struct {
	session      *session.Store
	inquiries    service.InquiryService
	projects     service.ProjectService
	testimonials service.TestimonialService
	close        func()
}

type globalOptions struct {
	statePath string
	verbose   bool
}

type opener func(ctx context.Context, opts globalOptions) (*app, error)

// cli owns the app for the lifetime of one invocation.
type cli struct {
	open opener
	opts globalOptions
	app  *app
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	c := &cli{open: openApp}
	err := c.rootCmd().ExecuteContext(ctx)
	c.close()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func (c *cli) current() *app { return c.app }

func (c *cli) close() {
	if c.app != nil && c.app.close != nil {
		c.app.close()
	}
	c.app = nil
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "codecraft",
		Short:        "CodeCraft admin CLI",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context(), c.opts)
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.opts.statePath, "state", defaultStatePath(), "path of the local session database")
	root.PersistentFlags().BoolVarP(&c.opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newLoginCmd(c.current),
		newLogoutCmd(c.current),
		newSignupCmd(c.current),
		newWhoamiCmd(c.current),
		newInquiriesCmd(c.current),
		newProjectsCmd(c.current),
		newTestimonialsCmd(c.current),
	)
	return root
}

func defaultStatePath() string {
	if p := os.Getenv("CODECRAFT_STATE"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".codecraft", "state.db")
	}
	return filepath.Join(dir, "codecraft", "state.db")
}

// openApp wires the real services. The pool connects lazily so that
// commands keep working, through the local fallback, while the database is
// unreachable.
func openApp(ctx context.Context, opts globalOptions) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level := "WARN"
	if opts.verbose {
		level = "DEBUG"
	}
	logger := logging.NewTo(zapcore.Lock(os.Stderr), level, "console")

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	store, err := kv.OpenSQLite(opts.statePath)
	if err != nil {
		pool.Close()
		return nil, err
	}

	profileRepo := repository.NewPgProfileRepository(pool)
	sessions := service.NewSessionService(repository.NewPgSessionRepository(pool), logger).WithTTL(cfg.Session.TTL)
	authService := service.NewAuthService(repository.NewPgUserRepository(pool), profileRepo, sessions, logger)
	profiles := service.NewProfileService(profileRepo)

	st := session.NewStore(authService, profiles, store, session.Options{
		Bypass:      session.NewBypass(cfg.Bypass),
		EmailDomain: cfg.Session.EmailDomain,
		Logger:      logger,
	})
	if err := st.Init(ctx); err != nil {
		logger.Warn("session restore failed", zap.Error(err))
	} else if err := st.RefreshProfile(ctx); err != nil {
		logger.Warn("profile refresh failed", zap.Error(err))
	}

	return &app{
		session:      st,
		inquiries:    service.NewInquiryService(repository.NewPgInquiryRepository(pool), fallback.NewInquiryLog(store, logger), logger),
		projects:     service.NewProjectService(repository.NewPgProjectRepository(pool)),
		testimonials: service.NewTestimonialService(repository.NewPgTestimonialRepository(pool)),
		close: func() {
			st.Close()
			_ = store.Close()
			pool.Close()
			_ = logger.Sync()
		},
	}, nil
}
