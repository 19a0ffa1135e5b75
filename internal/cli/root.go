package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "CODESCAN_REPORT"

type RootConfig struct {
	ConfigFile string
	EnvFile    string
	LogLevel   string
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		reportFailure(os.Stderr, os.Getenv, err)
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "codescan-report",
		Short:         "Export code scanning alerts and dependency licenses to a spreadsheet",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadEnvFile(cfg.EnvFile); err != nil {
				return err
			}
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.EnvFile, "env-file", ".env", "Dotenv file loaded before reading the environment")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newInspectCommand())
	return cmd
}

// loadEnvFile exports the variables of a dotenv file without overriding
// variables already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to load env file").
			WithCause(err)
	}
	return nil
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	bindEnvironment()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("codescan-report")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/codescan-report")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

// bindEnvironment maps the variables a workflow runner provides onto
// config keys, after the prefixed names.
func bindEnvironment() {
	_ = viper.BindEnv("token", envPrefix+"_TOKEN", "INPUT_TOKEN", "GITHUB_TOKEN")
	_ = viper.BindEnv("api_url", envPrefix+"_API_URL", "GITHUB_API_URL")
	_ = viper.BindEnv("graphql_url", envPrefix+"_GRAPHQL_URL", "GITHUB_GRAPHQL_URL")
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// reportFailure prints the single failure message of a run. Inside a
// GitHub Actions runner it is emitted as an error workflow command.
func reportFailure(w io.Writer, getenv func(string) string, err error) {
	message := errorMessage(err)
	if getenv("GITHUB_ACTIONS") == "true" {
		fmt.Fprintf(w, "::error::%s\n", escapeWorkflowData(message))
		return
	}
	fmt.Fprintf(w, "error: %s\n", message)
}

func escapeWorkflowData(value string) string {
	replacer := strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	return replacer.Replace(value)
}

func exitCodeForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument:
		return 2
	case errbuilder.CodePermissionDenied:
		return 3
	case errbuilder.CodeNotFound:
		return 4
	case errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

// errorMessage renders the builder message followed by its cause.
func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		if builder.Cause != nil {
			return builder.Msg + ": " + builder.Cause.Error()
		}
		return builder.Msg
	}
	return err.Error()
}
