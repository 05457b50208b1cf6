package fitlog

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitlog/internal/service"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the database file aside and bring it back",
}

var (
	backupOut    string
	backupDir    string
	backupKeep   int
	restoreFile  string
	restoreForce bool
)

// backupLocation returns the database path and the directory backups go to.
func backupLocation() (string, string, error) {
	path, err := resolveDBPath()
	if err != nil {
		return "", "", err
	}
	if backupDir != "" {
		return path, backupDir, nil
	}
	return path, filepath.Join(filepath.Dir(path), "backups"), nil
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write a consistent snapshot of the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, dir, err := backupLocation()
		if err != nil {
			return err
		}
		target := backupOut
		if target == "" {
			target = filepath.Join(dir, "fitlog-"+time.Now().Format("20060102-150405")+".db")
		}
		return withDB(func(sqldb *sql.DB) error {
			info, err := service.CreateBackup(sqldb, target)
			if err != nil {
				return err
			}
			logger.Info("backup written", "path", info.Path, "bytes", info.SizeBytes)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Backup %s (%d bytes)\nsha256 %s\n", info.Path, info.SizeBytes, info.Checksum)
			if backupKeep > 0 {
				removed, err := service.PruneBackups(filepath.Dir(info.Path), backupKeep)
				if err != nil {
					return err
				}
				for _, p := range removed {
					fmt.Fprintln(out, mutedStyle.Render("pruned "+p))
				}
			}
			return nil
		})
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, dir, err := backupLocation()
		if err != nil {
			return err
		}
		items, err := service.ListBackups(dir)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No backups in %s\n", dir)
			return nil
		}
		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintln(tw, "FILE\tBYTES\tTAKEN\tSHA256")
		for _, it := range items {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", filepath.Base(it.Path), it.SizeBytes, fmtTime(it.CreatedAt), it.Checksum)
		}
		return tw.Flush()
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the database with a backup file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if restoreFile == "" {
			return fmt.Errorf("--file is required")
		}
		path, _, err := backupLocation()
		if err != nil {
			return err
		}
		if err := service.RestoreBackup(restoreFile, path, restoreForce); err != nil {
			return err
		}
		logger.Warn("database replaced from backup", "from", restoreFile, "db", path)
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s from %s\n", path, restoreFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)

	for _, c := range []*cobra.Command{backupCreateCmd, backupListCmd} {
		c.Flags().StringVar(&backupDir, "dir", "", "Backup directory (default: backups/ next to the database)")
	}
	backupCreateCmd.Flags().StringVar(&backupOut, "out", "", "Exact backup file path (overrides --dir)")
	backupCreateCmd.Flags().IntVar(&backupKeep, "keep", 0, "After writing, keep only the newest N backups in that directory")
	backupRestoreCmd.Flags().StringVar(&restoreFile, "file", "", "Backup .db file to restore")
	backupRestoreCmd.Flags().BoolVar(&restoreForce, "force", false, "Overwrite an existing database")
}
