package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"easel/internal/board"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	ID    string // new sticker id
	Data  string // JSON payload
	Lower string // explicit lower id (defaults to the current top)
}

// AddResult holds the outcome of an add for JSON output.
type AddResult struct {
	Added    string  `json:"added"`
	Lower    *string `json:"lower,omitempty"`
	Stickers int     `json:"stickers"`
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <board.yaml>",
		Short: "Append a sticker on top of a board",
		Long: `Append a sticker as the new top of a board file.

The sticker's lower_id defaults to the current top, which is the only
position the engine accepts. Passing --lower overrides the default and
will be rejected with a broken-chain error unless it names the top.

The board file is rewritten in canonical bottom-to-top order.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ID, "id", "", "id of the new sticker (required)")
	cmd.Flags().StringVar(&opts.Data, "data", "", "sticker payload as a JSON object")
	cmd.Flags().StringVar(&opts.Lower, "lower", "", "explicit lower id (defaults to the current top)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func runAdd(opts *AddOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	bf, err := LoadBoardFile(path)
	if err != nil {
		return f.Fail(ExitCommandError, loadCode(err), err.Error(), "")
	}

	e, err := buildEngine(bf, nil)
	if err != nil {
		return f.Fail(ExitFailure, ValidationCode(err), err.Error(), "")
	}

	record := board.Record{ID: opts.ID}
	if opts.Data != "" {
		var data map[string]any
		if err := json.Unmarshal([]byte(opts.Data), &data); err != nil {
			return f.Fail(ExitCommandError, ErrCodeParse, fmt.Sprintf("parse --data: %v", err), "")
		}
		record.Data = data
	}

	if cmd.Flags().Changed("lower") {
		record.LowerID = board.LowerRef(opts.Lower)
	} else if top, ok := e.Top(); ok {
		record.LowerID = board.LowerRef(top.ID)
	}

	if err := e.Add(record); err != nil {
		return f.Fail(ExitFailure, ValidationCode(err), err.Error(), opts.ID)
	}

	bf.Stickers = e.Items()
	if err := SaveBoardFile(path, bf); err != nil {
		return f.Fail(ExitCommandError, loadCode(err), err.Error(), "")
	}

	result := AddResult{Added: record.ID, Lower: record.LowerID, Stickers: e.Len()}
	if done, err := f.JSON(result); done {
		return err
	}

	if record.LowerID == nil {
		fmt.Fprintf(f.Writer, "added %s (bottom)\n", record.ID)
	} else {
		fmt.Fprintf(f.Writer, "added %s on top of %s\n", record.ID, *record.LowerID)
	}
	return nil
}
