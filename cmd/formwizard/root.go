package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/registry"
)

type app struct {
	configFile  string
	store       string
	storeDir    string
	redisAddr   string
	locale      string
	logLevel    string
	definitions string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "formwizard",
		Short: "Run and inspect multi-step site forms",
		Long: `formwizard walks the site's multi-step forms (consulting bookings,
course and incubator registrations, business tourism and real estate
inquiries) in the terminal, with auto-saved progress and price summaries.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "YAML config file")
	flags.StringVar(&a.store, "store", "", "progress store (memory, file, redis)")
	flags.StringVar(&a.storeDir, "store-dir", "", "directory for the file store")
	flags.StringVar(&a.redisAddr, "redis-addr", "", "redis address for the redis store")
	flags.StringVar(&a.locale, "locale", "", "validation message locale (ar, en)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.definitions, "definitions", "", "directory with extra form definitions")

	root.AddCommand(
		a.sectionsCmd(),
		a.runCmd(),
		a.priceCmd(),
		a.validateCmd(),
		a.openapiCmd(),
		a.clearCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var opts []config.Option
	if a.configFile != "" {
		opts = append(opts, config.WithFile(a.configFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	override := func(name, value string, dst *string) {
		if flags.Changed(name) {
			*dst = strings.TrimSpace(value)
		}
	}
	override("store", strings.ToLower(a.store), &cfg.Store.Kind)
	override("store-dir", a.storeDir, &cfg.Store.Dir)
	override("redis-addr", a.redisAddr, &cfg.Store.RedisAddr)
	override("locale", strings.ToLower(a.locale), &cfg.Locale)
	override("log-level", a.logLevel, &cfg.Log.Level)
	override("definitions", a.definitions, &cfg.Definitions)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log.Level, logging.Format(cfg.Log.Format))
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// registry returns the built-in definitions plus any found in the
// configured definitions directory.
func (a *app) registry() (*registry.Registry, error) {
	reg, err := registry.Builtin()
	if err != nil {
		return nil, err
	}
	if a.cfg.Definitions == "" {
		return reg, nil
	}

	extra, err := registry.LoadFS(os.DirFS(a.cfg.Definitions))
	if err != nil {
		return nil, err
	}
	for _, id := range extra.IDs() {
		def, _ := extra.Definition(id)
		if err := reg.Add(def); err != nil {
			return nil, err
		}
	}
	a.logger.Debug("loaded extra definitions", zap.String("dir", a.cfg.Definitions), zap.Int("count", len(extra.IDs())))
	return reg, nil
}

func (a *app) definition(name string) (model.Definition, *registry.Registry, error) {
	reg, err := a.registry()
	if err != nil {
		return model.Definition{}, nil, err
	}
	def, ok := reg.Lookup(name)
	if !ok {
		return model.Definition{}, nil, fmt.Errorf("unknown form %q (see `formwizard sections`)", name)
	}
	return def, reg, nil
}
