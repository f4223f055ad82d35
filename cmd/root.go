package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/umilog/umiseed/internal/iofs"
	"github.com/umilog/umiseed/internal/iologger"
	app "github.com/umilog/umiseed/pkg"
	"github.com/umilog/umiseed/pkg/config"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
	Use:     "umiseed",
	Short:   "umiseed builds the pre-seeded dive-site database for UmiLog",
	Long: `umiseed manages the offline seed dataset shipped inside the UmiLog
dive-log app: dive sites, marine species, their associations, and site
media.

The tool provides the full seed pipeline:
  - fetch:    scrape taxonomy and photo data from public APIs
  - merge:    combine and deduplicate site datasets
  - validate: check the seed JSON documents for consistency
  - build:    assemble the SQLite seed database from the JSON documents
  - upload:   push site media to the CDN bucket

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (UMISEED_*)
  3. Config file (~/.config/umiseed/config.yaml)
  4. Built-in defaults`,
	PersistentPreRunE: bootstrap,
	RunE:              runRoot,
	SilenceErrors:     true,
	SilenceUsage:      true,
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

	// Initialize logging with hardcoded defaults.
	// Will be reconfigured later with user's config settings.
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
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded.
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// R2 credentials are runtime-only secrets, never read from config.yaml.
	if s := os.Getenv("R2_ACCESS_KEY_ID"); s != "" {
		cfg.Update([]config.Option{config.OptUploadAccessKeyID(s)})
	}
	if s := os.Getenv("R2_SECRET_ACCESS_KEY"); s != "" {
		cfg.Update([]config.Option{config.OptUploadSecretAccessKey(s)})
	}

	// Reconfigure logging with user's settings.
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
// Appends so the bootstrap log lines survive the switch.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log, true)
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Remove the automatic "umiseed version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V
	rootCmd.Flags().BoolP("version", "V", false, "version for umiseed")

	rootCmd.AddCommand(
		getBuildCmd(),
		getValidateCmd(),
		getMergeCmd(),
		getFetchCmd(),
		getUploadCmd(),
	)
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
	// We bind them manually so we can see clearly which env variables are
	// allowed. These match the fields included in config.ToOptions().
	// The second name on a binding keeps the variable names used by the
	// older Python seed scripts working.
	v.SetEnvPrefix("UMISEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Paths configuration
	v.BindEnv("paths.data_dir", "UMISEED_PATHS_DATA_DIR", "SEED_DATA_DIR")
	v.BindEnv("paths.output_dir", "UMISEED_PATHS_OUTPUT_DIR", "OUTPUT_DIR")

	// Build configuration
	v.BindEnv("build.batch_size", "UMISEED_BUILD_BATCH_SIZE")
	v.BindEnv("build.database_file", "UMISEED_BUILD_DATABASE_FILE")

	// Fetch configuration
	v.BindEnv("fetch.request_delay_ms", "UMISEED_FETCH_REQUEST_DELAY_MS")
	v.BindEnv("fetch.photos_per_species", "UMISEED_FETCH_PHOTOS_PER_SPECIES")
	v.BindEnv("fetch.checkpoint_every", "UMISEED_FETCH_CHECKPOINT_EVERY")

	// Upload configuration (credentials stay out of viper on purpose)
	v.BindEnv("upload.account_id", "UMISEED_UPLOAD_ACCOUNT_ID", "R2_ACCOUNT_ID")
	v.BindEnv("upload.bucket", "UMISEED_UPLOAD_BUCKET", "R2_BUCKET_NAME")
	v.BindEnv("upload.public_url", "UMISEED_UPLOAD_PUBLIC_URL", "R2_PUBLIC_URL")

	// Log configuration
	v.BindEnv("log.level", "UMISEED_LOG_LEVEL")
	v.BindEnv("log.format", "UMISEED_LOG_FORMAT")
	v.BindEnv("log.destination", "UMISEED_LOG_DESTINATION")

	v.AutomaticEnv()
}
