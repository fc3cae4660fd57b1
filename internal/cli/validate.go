package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"easel/internal/board"
)

// ValidationResult holds validation results for JSON output.
type ValidationResult struct {
	Valid    bool   `json:"valid"`
	Stickers int    `json:"stickers"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <board.yaml>",
		Short: "Check a board's chain structure",
		Long: `Validate the chain structure of a board file without modifying it.

Checks identity uniqueness, referential integrity of lower_id links,
and acyclicity. Exit code 0 means the board linearizes cleanly; exit
code 1 is a structural failure; exit code 2 a command error.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	bf, err := LoadBoardFile(path)
	if err != nil {
		return f.Fail(ExitCommandError, loadCode(err), err.Error(), "")
	}

	f.VerboseLog("loaded %d sticker(s) from %s", len(bf.Stickers), path)

	e, err := buildEngine(bf, nil)
	if err != nil {
		record := ""
		var ve *board.ValidationError
		if errors.As(err, &ve) {
			record = ve.RecordID
		}
		if f.Format == "text" {
			fmt.Fprintln(f.Writer, "✗ validation failed")
		}
		return f.Fail(ExitFailure, ValidationCode(err), err.Error(), record)
	}

	if done, err := f.JSON(ValidationResult{Valid: true, Stickers: e.Len()}); done {
		return err
	}

	fmt.Fprintf(f.Writer, "✓ board valid (%d stickers)\n", e.Len())
	return nil
}
