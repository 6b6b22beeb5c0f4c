package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vegdata/vegmat/internal/iofs"
	"github.com/vegdata/vegmat/internal/iologger"
	app "github.com/vegdata/vegmat/pkg"
	"github.com/vegdata/vegmat/pkg/config"
)

var (
	homeDir string
	cfg     *config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vegmat",
		Short: "vegmat builds community matrices from vegetation surveys",
		Long: `vegmat turns long-format vegetation survey tables into aligned
site-by-species and site-by-environment matrices and prepares them
for ordination.

Commands:
  matrix   build community and environmental matrices from surveys
  summary  profile a survey table before building
  pca      principal component analysis of a community matrix
  biplot   project a fitted PCA onto two axes, save layout or image
  rda      redundancy analysis against environmental constraints
  runs     list archived analysis runs

Survey tables are declared in ~/.config/vegmat/datasets.yaml; a
dataset can be backed by a delimited file or a PostgreSQL table. The
file is generated with a commented example on first run.

Configuration precedence (highest to lowest):
  1. CLI flags (--scaling, --transform, etc.)
  2. Environment variables (VEGMAT_*)
  3. Config file (~/.config/vegmat/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (database.host → VEGMAT_DATABASE_HOST).

  Examples:
    VEGMAT_DATABASE_HOST        PostgreSQL host for table-backed surveys
    VEGMAT_DATABASE_PASSWORD    PostgreSQL password
    VEGMAT_DATABASE_FETCH_SIZE  rows fetched per round trip
    VEGMAT_PLOT_SCALING         default biplot scaling (1 or 2)
    VEGMAT_LOG_LEVEL            log level (debug/info/warn/error)
    VEGMAT_JOBS_NUMBER          concurrent workers

  See 'go doc github.com/vegdata/vegmat/pkg/config' for complete list.`,
		Version: fmt.Sprintf(
			"version: %s\nbuild:   %s", app.Version, app.Build,
		),
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "vegmat version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Version flag responds to -V as well
	rootCmd.Flags().BoolP("version", "V", false, "version for vegmat")

	rootCmd.AddCommand(getMatrixCmd())
	rootCmd.AddCommand(getSummaryCmd())
	rootCmd.AddCommand(getPCACmd())
	rootCmd.AddCommand(getBiplotCmd())
	rootCmd.AddCommand(getRDACmd())
	rootCmd.AddCommand(getRunsCmd())

	return rootCmd
}

// getConfig returns the configuration loaded during bootstrap.
func getConfig() *config.Config {
	return cfg
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Logging starts with hardcoded defaults and is reconfigured once
	// the user's settings are known.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDatasetsFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	cfg.Update(cfgViper.ToOptions())

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reinitialize logging with the user's settings, appending so the
	// entries written during bootstrap survive.
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are
	// allowed. These match the fields included in config.ToOptions() -
	// i.e., persistent configuration that can be stored in config.yaml.
	v.SetEnvPrefix("VEGMAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.database", "DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")
	v.BindEnv("database.fetch_size", "DATABASE_FETCH_SIZE")

	// Plot configuration
	v.BindEnv("plot.scaling", "PLOT_SCALING")
	v.BindEnv("plot.format", "PLOT_FORMAT")
	v.BindEnv("plot.width", "PLOT_WIDTH")
	v.BindEnv("plot.height", "PLOT_HEIGHT")

	// Log configuration
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "JOBS_NUMBER")

	v.AutomaticEnv()
}
