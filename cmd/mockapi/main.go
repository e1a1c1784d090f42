// mockapi - mock HTTP API for exercising client integrations
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aaira-a/mock-api-files/pkg/blobstore"
	"github.com/aaira-a/mock-api-files/pkg/config"
	"github.com/aaira-a/mock-api-files/pkg/logging"
	"github.com/aaira-a/mock-api-files/pkg/server"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

type serveFlags struct {
	port       int
	configFile string
	docsDir    string
	logLevel   string
	logFormat  string
}

var serveFlagVals serveFlags

var rootCmd = &cobra.Command{
	Use:   "mockapi",
	Short: "Mock HTTP API for exercising client integrations",
	Long: `mockapi serves a fixed set of HTTP routes that echo request data,
return hardcoded fixture payloads, simulate file transfers, and issue
deferred asynchronous callbacks.

Running mockapi with no command starts the server with defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(serveFlagVals)
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the mock API server (default command)",
	Example: `  # Start with defaults
  mockapi serve

  # Start on a custom port with a config file
  mockapi serve --port 3000 --config mockapi.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(serveFlagVals)
	},
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mockapi %s (commit %s, built %s)\n", Version, Commit, BuildDate)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().IntVar(&serveFlagVals.port, "port", 0, "HTTP port (overrides config)")
		cmd.Flags().StringVar(&serveFlagVals.configFile, "config", "", "path to YAML config file")
		cmd.Flags().StringVar(&serveFlagVals.docsDir, "docs-dir", "", "directory of JSON documents served under /api/docs")
		cmd.Flags().StringVar(&serveFlagVals.logLevel, "log-level", "", "log level (debug, info, warn, error)")
		cmd.Flags().StringVar(&serveFlagVals.logFormat, "log-format", "", "log format (text, json)")
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func runServe(f serveFlags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
	})

	opts := []server.Option{server.WithLogger(log)}

	if cfg.BlobStore.Enabled() {
		store, err := blobstore.NewMinio(blobstore.Options{
			Endpoint:  cfg.BlobStore.Endpoint,
			AccessKey: cfg.BlobStore.AccessKey,
			SecretKey: cfg.BlobStore.SecretKey,
			Region:    cfg.BlobStore.Region,
			Bucket:    cfg.BlobStore.Bucket,
			UseSSL:    cfg.BlobStore.UseSSL,
		})
		if err != nil {
			return fmt.Errorf("configure blob store: %w", err)
		}
		opts = append(opts, server.WithBlobStore(store))
		log.Info("blob store enabled", "bucket", cfg.BlobStore.Bucket, "instance", cfg.BlobStore.InstanceID)
	} else {
		log.Info("blob store not configured, callback auditing disabled")
	}

	srv := server.New(cfg, opts...)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	fmt.Printf("mockapi listening on port %d\n", cfg.HTTPPort)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nShutting down...")
	return srv.Stop()
}

// loadConfig builds the effective configuration: file values over defaults,
// then environment, then flags.
func loadConfig(f serveFlags) (*config.Config, error) {
	cfg := config.Default()

	if f.configFile != "" {
		loaded, err := config.LoadFile(f.configFile)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", f.configFile, err)
		}
		cfg = loaded
	}

	cfg.FromEnv()

	if f.port != 0 {
		cfg.HTTPPort = f.port
	}
	if f.docsDir != "" {
		cfg.DocsDir = f.docsDir
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.logFormat != "" {
		cfg.LogFormat = f.logFormat
	}

	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
