package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"inkwell/app/repositories"
)

const backupDir = "data/backups"

func (c *CLI) newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database lifecycle commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Initialize an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDBInit()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clean",
		Short: "Remove the database and session store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDBClean()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "backup",
		Short: "Create a timestamped copy of the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDBBackup()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the database from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDBRestore(args[0])
		},
	})
	return cmd
}

func (c *CLI) runDBInit() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.Database.Path); err == nil {
		fmt.Println("Database already exists. Use 'db clean' first if you want to reinitialize.")
		return nil
	}

	if err := ensureDataDirs(cfg); err != nil {
		return err
	}

	db, err := repositories.OpenSQL(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Println("Database initialized successfully")
	return nil
}

func (c *CLI) runDBClean() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.Database.Path); os.IsNotExist(err) {
		fmt.Println("Database is already clean (does not exist)")
		return nil
	}

	fmt.Print("Are you sure you want to clean the database? This cannot be undone. [y/N] ")
	var response string
	fmt.Scanln(&response)
	if response != "y" && response != "Y" {
		fmt.Println("Operation cancelled")
		return nil
	}

	if err := os.Remove(cfg.Database.Path); err != nil {
		return fmt.Errorf("failed to remove database: %w", err)
	}
	if err := os.RemoveAll(cfg.Sessions.Path); err != nil {
		return fmt.Errorf("failed to remove session store: %w", err)
	}
	fmt.Println("Database cleaned successfully")
	return nil
}

func (c *CLI) runDBBackup() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.Database.Path); os.IsNotExist(err) {
		fmt.Println("No database exists to backup")
		return nil
	}

	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	if err := copyFile(cfg.Database.Path, backupFile); err != nil {
		return err
	}

	fmt.Printf("Database backed up successfully to %s\n", backupFile)
	return nil
}

func (c *CLI) runDBRestore(backupFile string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(backupFile); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupFile)
	}

	if _, err := os.Stat(cfg.Database.Path); err == nil {
		fmt.Print("Existing database found. Do you want to replace it? [y/N] ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Operation cancelled")
			return nil
		}
	}

	if err := ensureDataDirs(cfg); err != nil {
		return err
	}
	if err := copyFile(backupFile, cfg.Database.Path); err != nil {
		return err
	}

	fmt.Println("Database restored successfully")
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Sync()
}
