package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"easel/internal/store"
)

// DBOptions holds flags shared by the store-backed commands.
type DBOptions struct {
	*RootOptions
	DBPath string
	Board  string // board name override (defaults to the file's name)
}

// ImportResult holds the outcome of an import for JSON output.
type ImportResult struct {
	Board       string `json:"board"`
	Stickers    int    `json:"stickers"`
	Fingerprint string `json:"fingerprint"`
}

// BoardsResult holds the stored board names for JSON output.
type BoardsResult struct {
	Boards []string `json:"boards"`
}

func addDBFlags(cmd *cobra.Command, opts *DBOptions) {
	cmd.Flags().StringVar(&opts.DBPath, "db", "easel.db", "path to the SQLite database")
	cmd.Flags().StringVar(&opts.Board, "board", "", "board name (defaults to the file's name)")
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DBOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <board.yaml>",
		Short: "Store a board file in the database",
		Long: `Validate a board file and store it in the SQLite database.

Stickers are saved in canonical bottom-to-top order together with the
board's content fingerprint. Importing under an existing name replaces
that board's contents.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	addDBFlags(cmd, opts)

	return cmd
}

func runImport(opts *DBOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

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

	name := opts.Board
	if name == "" {
		name = bf.Name
	}

	s, err := store.Open(opts.DBPath)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, err.Error(), "")
	}
	defer s.Close()

	if err := s.SaveBoard(cmd.Context(), name, e.Items(), fingerprint); err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, err.Error(), "")
	}

	result := ImportResult{Board: name, Stickers: e.Len(), Fingerprint: fingerprint}
	if done, err := f.JSON(result); done {
		return err
	}

	fmt.Fprintf(f.Writer, "imported %s (%d stickers)\n", name, e.Len())
	return nil
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DBOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <name> <board.yaml>",
		Short: "Write a stored board to a file",
		Long: `Load a board from the SQLite database and write it as YAML.

The stored record set is revalidated on the way out, so a database
touched by other tools still yields a well-formed chain or a clear
error.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "easel.db", "path to the SQLite database")

	return cmd
}

func runExport(opts *DBOptions, name, path string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := store.Open(opts.DBPath)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, err.Error(), "")
	}
	defer s.Close()

	records, err := s.LoadBoard(cmd.Context(), name)
	if err != nil {
		if errors.Is(err, store.ErrBoardNotFound) {
			return f.Fail(ExitCommandError, ErrCodeNotFound, err.Error(), "")
		}
		return f.Fail(ExitCommandError, ErrCodeStore, err.Error(), "")
	}

	bf := &BoardFile{Name: name, Stickers: records}
	e, err := buildEngine(bf, nil)
	if err != nil {
		return f.Fail(ExitFailure, ValidationCode(err), err.Error(), "")
	}

	bf.Stickers = e.Items()
	if err := SaveBoardFile(path, bf); err != nil {
		return f.Fail(ExitCommandError, loadCode(err), err.Error(), "")
	}

	fingerprint, err := e.Fingerprint()
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), "")
	}

	result := ListResult{Name: name, Stickers: bf.Stickers, Fingerprint: fingerprint}
	if top, ok := e.Top(); ok {
		result.Top = &top.ID
	}
	if done, err := f.JSON(result); done {
		return err
	}

	fmt.Fprintf(f.Writer, "exported %s (%d stickers) to %s\n", name, e.Len(), path)
	return nil
}

// NewBoardsCommand creates the boards command.
func NewBoardsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DBOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "boards",
		Short:         "List boards stored in the database",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoards(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "easel.db", "path to the SQLite database")

	return cmd
}

func runBoards(opts *DBOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := store.Open(opts.DBPath)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, err.Error(), "")
	}
	defer s.Close()

	names, err := s.ListBoards(cmd.Context())
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, err.Error(), "")
	}

	if done, err := f.JSON(BoardsResult{Boards: names}); done {
		return err
	}

	if len(names) == 0 {
		fmt.Fprintln(f.Writer, "no boards")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(f.Writer, name)
	}
	return nil
}
