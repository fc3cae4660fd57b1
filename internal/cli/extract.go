package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"easel/internal/board"
)

// ExtractOptions holds flags for the extract command.
type ExtractOptions struct {
	*RootOptions
	IDPrefix string // deterministic sequence ids instead of UUIDs
}

// ExtractResult holds the extracted chain for JSON output.
type ExtractResult struct {
	Stickers []board.Record `json:"stickers"` // bottom to top
}

// NewExtractCommand creates the extract command.
func NewExtractCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExtractOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "extract <board.yaml> <id>...",
		Short: "Copy a selection into a fresh chain",
		Long: `Copy selected stickers into a new, self-consistent chain.

Selection order is irrelevant: the new chain mirrors the board's own
bottom-to-top order. Extracted stickers get freshly generated ids
(UUIDv7 by default, sequential with --id-prefix) and copied payloads;
the board file itself is not modified.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.IDPrefix, "id-prefix", "", "generate sequential ids with this prefix instead of UUIDs")

	return cmd
}

func runExtract(opts *ExtractOptions, path string, ids []string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	bf, err := LoadBoardFile(path)
	if err != nil {
		return f.Fail(ExitCommandError, loadCode(err), err.Error(), "")
	}

	var gen board.IDGenerator
	if opts.IDPrefix != "" {
		gen = board.NewSequenceGenerator(opts.IDPrefix)
	}

	e, err := buildEngine(bf, gen)
	if err != nil {
		return f.Fail(ExitFailure, ValidationCode(err), err.Error(), "")
	}

	selection := make([]board.Record, 0, len(ids))
	for _, id := range ids {
		selection = append(selection, board.Record{ID: id})
	}

	extracted, err := e.Extract(selection)
	if err != nil {
		return f.Fail(ExitFailure, ValidationCode(err), err.Error(), "")
	}

	if done, err := f.JSON(ExtractResult{Stickers: extracted}); done {
		return err
	}

	fmt.Fprintf(f.Writer, "extracted: %d\n", len(extracted))
	for i, r := range extracted {
		if r.LowerID == nil {
			fmt.Fprintf(f.Writer, "  %d. %s (bottom)\n", i+1, r.ID)
		} else {
			fmt.Fprintf(f.Writer, "  %d. %s ^ %s\n", i+1, r.ID, *r.LowerID)
		}
	}
	return nil
}
