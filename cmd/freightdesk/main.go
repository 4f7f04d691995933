package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/nhle/freightdesk/internal/api"
	"github.com/nhle/freightdesk/internal/app"
	"github.com/nhle/freightdesk/internal/credential"
	"github.com/nhle/freightdesk/internal/logging"
	"github.com/nhle/freightdesk/internal/mailer"
	"github.com/nhle/freightdesk/internal/model"
	"github.com/nhle/freightdesk/internal/report"
	"github.com/nhle/freightdesk/internal/session"
	"github.com/nhle/freightdesk/internal/store"
)

const usage = `Usage:
  freightdesk [flags]                 start the terminal client
  freightdesk export [flags]          write one report workbook and exit

Flags:
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "freightdesk:", err)
		os.Exit(1)
	}
}

type env struct {
	cfg        *model.AppConfig
	configPath string
	logger     *zap.Logger
	store      *store.SQLiteStore
	vault      *credential.Vault
	drafts     report.DraftSaver
}

func run(args []string) error {
	exportMode := len(args) > 0 && args[0] == "export"
	if exportMode {
		args = args[1:]
	}

	fs := pflag.NewFlagSet("freightdesk", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", model.DefaultConfigPath(), "path to config.yaml")
	dbPath := fs.String("db", model.DefaultDBPath(), "path to the local SQLite database")
	debug := fs.Bool("debug", false, "log at debug level")

	var req report.Request
	var kind string
	if exportMode {
		fs.StringVarP(&kind, "kind", "k", "", "report kind, e.g. client-bills")
		fs.StringVarP(&req.Entity, "name", "n", "", "client, vendor or branch name")
		fs.StringVar(&req.From, "from", "", "first day, YYYY-MM-DD")
		fs.StringVar(&req.To, "to", "", "last day, YYYY-MM-DD")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	rt, err := setup(*configPath, *dbPath, *debug)
	if err != nil {
		return err
	}
	defer rt.close()

	if exportMode {
		req.Kind = report.Kind(kind)
		return runExport(rt, req)
	}
	return runTUI(rt)
}

func setup(configPath, dbPath string, debug bool) (*env, error) {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log, debug)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	vault, err := credential.Open(model.ConfigDir())
	if err != nil {
		s.Close()
		return nil, err
	}

	rt := &env{
		cfg:        cfg,
		configPath: configPath,
		logger:     logger,
		store:      s,
		vault:      vault,
	}

	if cfg.Mail.Enabled {
		password, err := vault.Lookup(credential.KeyMailPassword)
		if err != nil {
			logger.Warn("reading mail password", zap.Error(err))
		}
		d, err := mailer.NewDrafter(cfg.Mail, password, logger)
		if err != nil {
			logger.Warn("mail drafts disabled", zap.Error(err))
		} else {
			rt.drafts = d
		}
	}

	logger.Debug("started",
		zap.String("config", configPath),
		zap.String("db", dbPath),
		zap.String("backend", cfg.Backend.BaseURL),
	)
	return rt, nil
}

func (rt *env) close() {
	if err := rt.store.Close(); err != nil {
		rt.logger.Warn("closing db", zap.Error(err))
	}
	_ = rt.logger.Sync()
}

func runTUI(rt *env) error {
	sess, err := session.Load(context.Background(), rt.store)
	hasSession := err == nil
	if err != nil && !errors.Is(err, session.ErrNoSession) {
		rt.logger.Warn("loading saved session", zap.Error(err))
	}

	m := app.New(app.Deps{
		Config:     rt.cfg,
		ConfigPath: rt.configPath,
		Store:      rt.store,
		Vault:      rt.vault,
		Logger:     rt.logger,
		Drafts:     rt.drafts,
		Session:    sess,
		HasSession: hasSession,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// runExport writes one workbook without starting the interface. It is
// meant for cron jobs that mail month-end statements.
func runExport(rt *env, req report.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	token, err := rt.vault.Lookup(credential.KeyAPIToken)
	if err != nil {
		return fmt.Errorf("reading api token: %w", err)
	}
	timeout := time.Duration(rt.cfg.Backend.TimeoutSec) * time.Second
	client := api.NewClient(rt.cfg.Backend.BaseURL, token, timeout, rt.logger)

	exporter := report.NewExporter(client, rt.store, rt.cfg.Reports, rt.logger)
	if rt.drafts != nil {
		exporter.SetDrafts(rt.drafts)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := exporter.Export(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%d rows)\n", res.Export.Path, res.Export.Rows)
	if res.DraftErr != nil {
		fmt.Fprintln(os.Stderr, "mail draft failed:", res.DraftErr)
	}
	return nil
}
