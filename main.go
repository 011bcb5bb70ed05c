package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFilePaths []string
	envFilePath     string
	logLevel        string
	logFormat       string
	runEvery        time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "s3upload",
	Short:         "Deploy local folders into an S3 bucket, skipping unchanged versions",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logLevel, logFormat)
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Bootstrap the bucket and upload every resource whose version changed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpload(cmd.Context())
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate the config file without touching the bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		appConfig, configErr := LoadConfig(configFilePaths...)
		if configErr != nil {
			return configErr
		}
		if validateErr := appConfig.Upload.Validate(); validateErr != nil {
			return validateErr
		}
		for _, line := range appConfig.ConfigStringArray() {
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVarP(&configFilePaths, "config", "c", nil, "Configuration file path (repeatable, later files override earlier ones)")
	rootCmd.PersistentFlags().StringVar(&envFilePath, "env-file", ".env", "Optional dotenv file loaded before reading AWS credentials")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text or json)")
	_ = rootCmd.MarkPersistentFlagRequired("config")

	uploadCmd.Flags().DurationVar(&runEvery, "every", 0, "Repeat the upload on this interval until interrupted")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(validateCmd)
}

func setupLogging(level, format string) error {
	parsedLevel, levelErr := log.ParseLevel(level)
	if levelErr != nil {
		return fmt.Errorf("invalid log level %q: %w", level, levelErr)
	}
	log.SetLevel(parsedLevel)

	switch strings.ToLower(format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid log format %q", format)
	}
	return nil
}

func runUpload(ctx context.Context) error {
	if envFilePath != "" {
		if envErr := godotenv.Load(envFilePath); envErr != nil && !os.IsNotExist(envErr) {
			log.Warn(fmt.Sprintf("Could not load env file %s: %s", envFilePath, envErr))
		}
	}

	appConfig, configErr := LoadConfig(configFilePaths...)
	if configErr != nil {
		return configErr
	}
	if validateErr := appConfig.Upload.Validate(); validateErr != nil {
		return validateErr
	}
	log.Info("Loaded config:")
	for _, line := range appConfig.ConfigStringArray() {
		log.Info(line)
	}

	store, storeErr := NewS3Store(ctx, appConfig.Provider)
	if storeErr != nil {
		return storeErr
	}

	var notifier Notifier
	if appConfig.Notify.Topic != "" {
		snsNotifier, notifierErr := NewSNSNotifier(ctx, appConfig)
		if notifierErr != nil {
			return fmt.Errorf("Error creating sns notifier: %w", notifierErr)
		}
		notifier = snsNotifier
	}

	syncHandler := NewSyncHandler(store, notifier, appConfig.Provider.Partition)
	if runEvery > 0 {
		return runScheduled(ctx, syncHandler, appConfig.Upload, runEvery)
	}

	_, runErr := syncHandler.Run(ctx, appConfig.Upload)
	return runErr
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	execErr := rootCmd.ExecuteContext(ctx)
	stop()
	if execErr != nil {
		log.Error(execErr)
		os.Exit(1)
	}
}
