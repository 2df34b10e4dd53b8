package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/betaseries/betaseries"
	"github.com/s0up4200/betaseries/config"
)

// configAnnotation controls how initializeApp loads configuration for a command.
// Commands without it need a valid config.
const configAnnotation = "config"

const (
	configOptional = "optional"
	configNone     = "none"
)

var (
	cfgFile   string
	tokenFlag string
	debug     bool

	cfg    *config.Config
	logger zerolog.Logger
	client *betaseries.Client

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "betaseries",
	Short: "A command line client for the BetaSeries API",
	Long: `betaseries calls the BetaSeries REST API from the command line.

Every command validates its parameters against the endpoint schema before
anything is sent, and prints the JSON response.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// SetVersion records the build information printed by the version command
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "member token sent as X-BetaSeries-Token")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(newCallCmd(methodGet))
	rootCmd.AddCommand(newCallCmd(methodPost))
	rootCmd.AddCommand(newCallCmd(methodDelete))
	rootCmd.AddCommand(endpointsCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// initializeApp initializes the configuration and client
func initializeApp(cmd *cobra.Command, args []string) error {
	mode := cmd.Annotations[configAnnotation]
	if mode == configNone {
		logger = setupLogger(config.LoggingConfig{Level: levelFor("info"), Format: "console", Color: true})
		return nil
	}

	// Load configuration
	var err error
	if mode == configOptional {
		cfg, err = config.Read(cfgFile)
	} else {
		cfg, err = config.Load(cfgFile)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Command line overrides
	if debug {
		cfg.Logging.Level = "debug"
	}
	if tokenFlag != "" {
		cfg.BetaSeries.Token = tokenFlag
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	client = betaseries.NewFromConfig(cfg.BetaSeries.ClientConfig(), betaseries.WithLogger(logger))

	logger.Debug().
		Str("host", client.Host()).
		Str("api_version", client.APIVersion()).
		Bool("token", client.Token() != "").
		Msg("BetaSeries client ready")

	return nil
}

func levelFor(fallback string) string {
	if debug {
		return "debug"
	}
	return fallback
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
