package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slidie/internal/config"
	"github.com/matzehuels/slidie/pkg/buildinfo"
	"github.com/matzehuels/slidie/pkg/cache"
	"github.com/matzehuels/slidie/pkg/observability"
	"github.com/matzehuels/slidie/pkg/pipeline"
)

// appName is the application name used for display.
const appName = "slidie"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	metricsFile string
	metrics     *prometheus.Registry
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. Call [CLI.LoadConfig] to read the user's configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// LoadConfig reads configuration from file and environment and applies
// its log level.
func (c *CLI) LoadConfig() error {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return err
	}
	c.Config = cfg
	if level, err := log.ParseLevel(strings.ToLower(cfg.Log.Level)); err == nil {
		c.SetLogLevel(level)
	}
	return nil
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Slidie resolves the build steps of slide layers",
		Long: `Slidie reads the layer names of a slide, each optionally annotated with
build steps like "Bullet <2-4> @points", and works out the steps at which
every layer is visible.`,
		Version:      buildinfo.Current().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.LoadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			if c.metricsFile != "" {
				c.enableMetrics()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.stepsCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.syntaxCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, c.Logger), nil
}

// newCache opens the output cache, falling back to no cache when the cache
// is disabled or its directory cannot be determined.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || !c.Config.Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// enableMetrics records pipeline and cache events in a private registry.
func (c *CLI) enableMetrics() {
	c.metrics = prometheus.NewRegistry()
	m := observability.NewMetrics(c.metrics)
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
}

// WriteMetrics writes the metrics collected during the command to the file
// given by --metrics-file. It does nothing if the flag was not given.
func (c *CLI) WriteMetrics() error {
	if c.metrics == nil {
		return nil
	}
	if err := observability.WriteTextfile(c.metricsFile, c.metrics); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	c.Logger.Debug("wrote metrics", "path", c.metricsFile)
	return nil
}
