package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/db"
	"github.com/jonathan/resume-optimizer/internal/dispatch"
	"github.com/jonathan/resume-optimizer/internal/extract"
	"github.com/jonathan/resume-optimizer/internal/fetch"
	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/logger"
)

// app holds what every command shares once flags are parsed.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:   "resume_agent",
		Short: "Tailor a resume to a job posting",
		Long: "resume_agent extracts job postings from job boards and rewrites a resume for them " +
			"through a chain of language models with automatic fallback.",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is resume_agent.yaml in the current directory)")
	flags.BoolP("debug", "d", false, "verbose/debug output")
	flags.BoolP("json", "j", false, "json format for logging")
	_ = a.v.BindPFlag("log.debug", flags.Lookup("debug"))
	_ = a.v.BindPFlag("log.json", flags.Lookup("json"))

	root.AddCommand(
		newOptimizeCmd(a),
		newExtractJobCmd(a),
		newCleanTextCmd(a),
		newStatusCmd(a),
		newModelsCmd(a),
	)
	return root
}

func (a *app) setup(*cobra.Command, []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	a.cfg, a.log = cfg, log
	return nil
}

func (a *app) extractor() *extract.Extractor {
	client := fetch.NewClient(a.cfg.FetchOptions(), a.cfg.Extract.UseBrowser, a.log)
	client.Browser.Timeout = a.cfg.Extract.BrowserTimeout
	return extract.New(client, extract.DefaultRoutes(), a.log)
}

// models returns the chain minus models whose provider has no credentials.
func (a *app) models() ([]llm.ModelSpec, error) {
	usable, skipped := a.cfg.UsableModels()
	for _, m := range skipped {
		a.log.Warn("skipping model without credentials", logger.ModelFields(string(m.Provider), m.ID)...)
	}
	if len(usable) == 0 {
		return nil, fmt.Errorf("no usable models configured")
	}
	return usable, nil
}

func (a *app) dispatcher(ctx context.Context) (*dispatch.Dispatcher, llm.Backends, error) {
	models, err := a.models()
	if err != nil {
		return nil, nil, err
	}
	backends, err := llm.NewBackends(ctx, models, a.cfg.BackendOptions())
	if err != nil {
		return nil, nil, err
	}
	opts := a.cfg.DispatchOptions(models)
	opts.Logger = a.log
	d, err := dispatch.New(backends, opts)
	if err != nil {
		_ = backends.Close()
		return nil, nil, err
	}
	return d, backends, nil
}

// store connects and migrates when a database URL is configured. It returns nil otherwise.
func (a *app) store(ctx context.Context, override string) (*db.DB, error) {
	url := a.cfg.DatabaseURL
	if override != "" {
		url = override
	}
	if url == "" {
		return nil, nil
	}
	database, err := db.Connect(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
