package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tuzuminami/Collatz/internal/config"
	"github.com/tuzuminami/Collatz/internal/logging"
	"github.com/tuzuminami/Collatz/internal/server"
)

var (
	serveHost   string
	servePort   int
	serveDebug  bool
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Collatz web server",
	Long: `Starts an HTTP server with a form page and a JSON API for computing
Collatz sequences.

Settings are resolved in order: built-in defaults, then the config file,
then COLLATZ_* environment variables, then flags given on the command
line. The config file defaults to collatz.yaml in the working directory
and is optional unless --config names one explicitly.

Example:
  collatz serve
  collatz serve --port 8080
  collatz serve --host 127.0.0.1 --port 8080 --debug
  collatz serve --config /etc/collatz/collatz.yaml`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", config.DefaultHost, "interface to bind")
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "port to listen on")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "enable debug logging")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "path to config file")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := resolveServeConfig(cmd)
	if err != nil {
		return err
	}

	logging.SetDebug(cfg.Server.Debug)

	srv, err := server.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	// Give the server a moment to start and check for errors
	select {
	case err := <-errCh:
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("%w (pick a different port with --port or %s)", err, config.EnvPort)
		}
		return err
	case <-time.After(100 * time.Millisecond):
		// Server started successfully
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Collatz server running on http://%s\n", srv.ListenAddr())
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl-C to stop.")

	select {
	case <-sigCh:
		fmt.Fprintln(cmd.OutOrStdout(), "\nShutting down...")
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if err := srv.Stop(); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	return nil
}

// resolveServeConfig builds the effective server configuration from
// defaults, the config file, the environment, and any flags that were
// explicitly set, in that order.
func resolveServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(serveConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("debug") {
		cfg.Server.Debug = serveDebug
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
