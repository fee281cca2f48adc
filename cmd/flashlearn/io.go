package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/flashlearn/flashlearn/internal/card"
	"github.com/flashlearn/flashlearn/internal/config"
	"github.com/flashlearn/flashlearn/internal/setio"
)

const fetchTimeout = 30 * time.Second

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file or url>",
		Short: "Import a study set from a JSON, YAML or ZIP file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), func(cfg *config.Config, db *sqlx.DB) error {
				filePath := args[0]
				if setio.IsURL(filePath) {
					fetcher := setio.NewFetcher("", fetchTimeout)
					defer func() {
						_ = fetcher.Close()
					}()

					downloaded, err := fetcher.Fetch(cmd.Context(), filePath)
					if err != nil {
						return err
					}
					defer func() {
						if err := os.Remove(downloaded); err != nil {
							slog.Default().Warn("failed to remove a downloaded file",
								slog.String("path", downloaded),
								slog.Any("error", err),
							)
						}
					}()
					filePath = downloaded
				}

				service := setio.NewService(card.NewDBRepository(db), cfg.Media.Directory)
				result, err := service.Import(cmd.Context(), filePath)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d cards into the set %d: %s\n",
					result.Imported, result.SetID, result.Name)
				if err != nil {
					return err
				}
				if result.Skipped > 0 {
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d invalid cards\n", result.Skipped)
				}
				return err
			})
		},
	}
}

func newExportCommand() *cobra.Command {
	var formatName string
	command := &cobra.Command{
		Use:   "export <set id> [file]",
		Short: "Export a study set",
		Long: "Export a study set as json, yaml, zip, md or pdf. " +
			"The format is taken from --format or the file extension. " +
			"Without a file the set is written to the exports directory.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			setID, err := parseID("set id", args[0])
			if err != nil {
				return err
			}
			var dest string
			if len(args) > 1 {
				dest = args[1]
			}
			format, err := exportFormat(formatName, dest)
			if err != nil {
				return err
			}

			return withDatabase(cmd.Context(), func(cfg *config.Config, db *sqlx.DB) error {
				if dest == "" {
					dest = filepath.Join(cfg.Exports.Directory, fmt.Sprintf("set-%d.%s", setID, format))
				}
				service := setio.NewService(card.NewDBRepository(db), cfg.Media.Directory,
					setio.WithTemplatePath(cfg.Exports.MarkdownTemplate),
				)
				if err := service.Export(cmd.Context(), setID, dest, format); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported the set %d to %s\n", setID, dest)
				return err
			})
		},
	}
	command.Flags().StringVarP(&formatName, "format", "f", "", "Output format. Options: json, yaml, zip, md, pdf")
	return command
}

// exportFormat prefers the flag, then the extension of dest, then JSON
func exportFormat(formatName, dest string) (setio.Format, error) {
	if formatName != "" {
		return setio.ParseFormat(formatName)
	}
	if dest == "" {
		return setio.FormatJSON, nil
	}
	return setio.FormatFromPath(dest)
}
