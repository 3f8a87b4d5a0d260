package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/fitkit/pkg/api"
	"github.com/ssargent/fitkit/pkg/config"
)

// archiveCmd groups the activity archive commands
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the local activity archive",
	Long: `Store FIT files in the local archive and read them back.

Examples:
  fitkit archive put morning.fit evening.fit
  fitkit archive list
  fitkit archive get 2VtPc0Q0vQFq1hYx7Y0hUj2b0cV -o copy.fit
  fitkit archive delete 2VtPc0Q0vQFq1hYx7Y0hUj2b0cV`,
}

// openArchive opens the archive configured in cfg through the container
func openArchive(cfg *config.Config) (api.ActivityArchive, error) {
	if container == nil {
		return nil, fmt.Errorf("dependency container not initialized")
	}
	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	archive, err := container.GetArchiveFactory().OpenArchive(
		cfg.ArchivePath(), cfg.Archive.Compression, cfg.Decode.ReadOptions(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return archive, nil
}

// withArchive runs fn against the configured archive and closes it afterwards
func withArchive(fn func(api.ActivityArchive) error) error {
	archive, err := openArchive(appConfig)
	if err != nil {
		return err
	}
	defer archive.Close()
	return fn(archive)
}

var archivePutCmd = &cobra.Command{
	Use:   "put <file...>",
	Short: "Archive FIT files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(func(a api.ActivityArchive) error {
			return archivePut(cmd.Context(), cmd.OutOrStdout(), a, args)
		})
	},
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived activities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(func(a api.ActivityArchive) error {
			return archiveList(cmd.Context(), cmd.OutOrStdout(), a)
		})
	},
}

var archiveGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Write an archived FIT file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		return withArchive(func(a api.ActivityArchive) error {
			return archiveGet(cmd.Context(), cmd.OutOrStdout(), a, args[0], output)
		})
	},
}

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an archived activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(func(a api.ActivityArchive) error {
			id, err := ksuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid activity id %q: %w", args[0], err)
			}
			if err := a.Delete(contextOrBackground(cmd.Context()), id); err != nil {
				return fmt.Errorf("failed to delete activity: %w", err)
			}
			cmd.Printf("Deleted %s\n", id)
			return nil
		})
	},
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// archivePut imports each path, stopping at the first failure
func archivePut(ctx context.Context, w io.Writer, a api.ActivityArchive, paths []string) error {
	ctx = contextOrBackground(ctx)
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		summary, err := a.Import(ctx, filepath.Base(path), raw)
		if err != nil {
			return fmt.Errorf("failed to archive %s: %w", path, err)
		}
		fmt.Fprintf(w, "%s\t%s\t%d messages\n", summary.ID, summary.Name, summary.Messages)
	}
	return nil
}

// archiveList prints one row per archived activity
func archiveList(ctx context.Context, w io.Writer, a api.ActivityArchive) error {
	list, err := a.List(contextOrBackground(ctx))
	if err != nil {
		return fmt.Errorf("failed to list activities: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tCREATED\tMESSAGES\tSIZE\tSTORED")
	for _, s := range list {
		created := "-"
		if s.TimeCreated != nil {
			created = s.TimeCreated.Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d (%s)\n",
			s.ID, s.Name, s.FileType, created, s.Messages, s.Size, s.StoredSize, s.Compression)
	}
	return tw.Flush()
}

// archiveGet writes the raw file of id to output, or to w when output is empty
func archiveGet(ctx context.Context, w io.Writer, a api.ActivityArchive, rawID, output string) error {
	id, err := ksuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid activity id %q: %w", rawID, err)
	}
	raw, err := a.GetRaw(contextOrBackground(ctx), id)
	if err != nil {
		return fmt.Errorf("failed to read activity: %w", err)
	}
	if output == "" {
		_, err = w.Write(raw)
		return err
	}
	if err := os.WriteFile(output, raw, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archivePutCmd, archiveListCmd, archiveGetCmd, archiveDeleteCmd)
	archiveGetCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
}
