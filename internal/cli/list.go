package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"easel/internal/board"
)

// ListResult holds a board listing for JSON output.
type ListResult struct {
	Name        string         `json:"name"`
	Stickers    []board.Record `json:"stickers"` // bottom to top
	Top         *string        `json:"top,omitempty"`
	Fingerprint string         `json:"fingerprint"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <board.yaml>",
		Short: "Print a board bottom-to-top",
		Long: `Print the stickers of a board in canonical bottom-to-top order.

This is the order a rendering layer paints the stacked view in: the
first line is the bottom-most sticker, the last line the top.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	bf, err := LoadBoardFile(path)
	if err != nil {
		return f.Fail(ExitCommandError, loadCode(err), err.Error(), "")
	}

	e, err := buildEngine(bf, nil)
	if err != nil {
		return f.Fail(ExitFailure, ValidationCode(err), err.Error(), "")
	}

	fingerprint, err := e.Fingerprint()
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), "")
	}
	f.VerboseLog("fingerprint: %s", fingerprint)

	result := ListResult{
		Name:        bf.Name,
		Stickers:    e.Items(),
		Fingerprint: fingerprint,
	}
	if top, ok := e.Top(); ok {
		result.Top = board.LowerRef(top.ID)
	}

	if done, err := f.JSON(result); done {
		return err
	}

	printBoard(f, result)
	return nil
}

// printBoard renders the text listing. Kept free of fingerprints and
// timestamps so output is stable for golden file comparison.
func printBoard(f *OutputFormatter, result ListResult) {
	fmt.Fprintf(f.Writer, "board: %s\n", result.Name)
	fmt.Fprintf(f.Writer, "stickers: %d\n", len(result.Stickers))
	for i, r := range result.Stickers {
		if r.LowerID == nil {
			fmt.Fprintf(f.Writer, "  %d. %s (bottom)\n", i+1, r.ID)
		} else {
			fmt.Fprintf(f.Writer, "  %d. %s ^ %s\n", i+1, r.ID, *r.LowerID)
		}
	}
	if result.Top != nil {
		fmt.Fprintf(f.Writer, "top: %s\n", *result.Top)
	} else {
		fmt.Fprintln(f.Writer, "top: (none)")
	}
}
