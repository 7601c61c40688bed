// Package cli provides the inkwell command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"inkwell/app/config"
	"inkwell/app/repositories"
	"inkwell/app/routes"
)

// Version is set at build time.
var Version = "0.1.0"

// CLI holds the command-line interface state.
type CLI struct {
	rootCmd    *cobra.Command
	configPath string
}

// New creates a new CLI instance.
func New() *CLI {
	c := &CLI{}
	c.rootCmd = c.newRootCmd()
	return c
}

// Execute runs the CLI and returns the process exit code.
func (c *CLI) Execute() int {
	if err := c.rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func (c *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "inkwell",
		Short:         "Inkwell - a server-rendered blog",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&c.configPath, "config", "", "path to config file (default ./inkwell.yaml)")

	cmd.AddCommand(c.newServeCmd())
	cmd.AddCommand(c.newDBCmd())
	cmd.AddCommand(c.newVersionCmd())
	return cmd
}

func (c *CLI) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the blog server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe()
		},
	}
}

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("inkwell version %s\n", Version)
		},
	}
}

func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *CLI) runServe() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))

	if err := ensureDataDirs(cfg); err != nil {
		return err
	}

	sqlDB, err := repositories.OpenSQL(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kv, err := repositories.OpenBadger(cfg.Sessions.Path)
	if err != nil {
		return err
	}
	defer kv.Close()

	router := routes.Setup(cfg, sqlDB, kv, logger)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("starting server", "addr", cfg.Server.Addr, "database", cfg.Database.Path)
	return srv.ListenAndServe()
}

func ensureDataDirs(cfg *config.Config) error {
	for _, dir := range []string{filepath.Dir(cfg.Database.Path), cfg.Sessions.Path} {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}
