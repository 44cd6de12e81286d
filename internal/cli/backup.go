package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	appbackup "github.com/bryanwahyu/esg-responder/internal/application/backup"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every collection and profile to a backup file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			doc, err := s.Backup.Export(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, "export failed", err)
			}

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return WrapExitError(ExitCommandError, "create output file", err)
				}
				defer f.Close()
				w = f
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			if err := enc.Encode(doc); err != nil {
				return WrapExitError(ExitFailure, "write backup", err)
			}
			if output != "" && output != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "exported %d keys to %s\n", len(doc.Data), output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <backup.json>",
		Short: "Restore a backup; nothing is written unless the whole file is valid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)
			if args[0] == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = os.ReadFile(args[0])
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "read backup", err)
			}

			s, err := openSession(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			sum, err := s.Backup.Import(cmd.Context(), raw)
			if err != nil {
				if errors.Is(err, appbackup.ErrInvalidBackup) {
					return WrapExitError(ExitFailure, "backup rejected", err)
				}
				return WrapExitError(ExitCommandError, "restore failed", err)
			}
			return newFormatter(rootOpts, cmd.OutOrStdout()).Success(sum, func(w io.Writer) {
				fmt.Fprintf(w, "restored %d keys (%d records)\n", sum.Keys, sum.Records)
			})
		},
	}
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return WrapExitError(ExitCommandError, "refusing to delete data without --yes", nil)
			}
			s, err := openSession(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			sum, err := s.Backup.Reset(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, "reset failed", err)
			}
			return newFormatter(rootOpts, cmd.OutOrStdout()).Success(sum, func(w io.Writer) {
				fmt.Fprintf(w, "removed %d keys\n", sum.Keys)
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
