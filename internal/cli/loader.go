package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"easel/internal/board"
)

// BoardFile is the on-disk YAML representation of a board.
//
// Example:
//
//	name: demo
//	stickers:
//	  - id: dog
//	    data: {color: brown}
//	  - id: cat
//	    lower_id: dog
//
// Sticker order in the file carries no meaning; the engine derives the
// stacking order from the lower_id links.
type BoardFile struct {
	Name     string         `yaml:"name"`
	Stickers []board.Record `yaml:"stickers"`
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E002" // File or board not found
	ErrCodeParse       = "E003" // Board file parse error
	ErrCodeWriteFailed = "E004" // File write error
	ErrCodeStore       = "E005" // Database error

	// Chain validation errors (mapped from the board engine)
	ErrCodeDuplicateID       = "E101"
	ErrCodeDanglingReference = "E102"
	ErrCodeCycle             = "E103"
	ErrCodeBrokenChain       = "E104"
	ErrCodeStickerNotFound   = "E105"
)

// ValidationCode maps an engine validation error to a CLI error code.
// Non-validation errors map to the generic code.
func ValidationCode(err error) string {
	var ve *board.ValidationError
	if !errors.As(err, &ve) {
		return ErrCodeGeneric
	}
	switch ve.Code {
	case board.ErrCodeDuplicateID:
		return ErrCodeDuplicateID
	case board.ErrCodeDanglingReference:
		return ErrCodeDanglingReference
	case board.ErrCodeCycleDetected:
		return ErrCodeCycle
	case board.ErrCodeBrokenChain:
		return ErrCodeBrokenChain
	case board.ErrCodeNotFound:
		return ErrCodeStickerNotFound
	default:
		return ErrCodeGeneric
	}
}

// LoadError represents an error that occurred while reading or writing
// a board file.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// loadCode extracts the CLI error code from a loader error.
func loadCode(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	return ErrCodeGeneric
}

// LoadBoardFile reads and parses a YAML board file.
//
// A missing name falls back to the file's base name without extension,
// so ad-hoc files need only a stickers list.
func LoadBoardFile(path string) (*BoardFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("board file not found: %s", path), Err: err}
		}
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("read board file %s", path), Err: err}
	}

	var bf BoardFile
	if err := yaml.Unmarshal(raw, &bf); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("parse board file %s", path), Err: err}
	}

	if bf.Name == "" {
		base := filepath.Base(path)
		bf.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return &bf, nil
}

// SaveBoardFile writes a board back to disk as YAML.
func SaveBoardFile(path string, bf *BoardFile) error {
	raw, err := yaml.Marshal(bf)
	if err != nil {
		return &LoadError{Code: ErrCodeWriteFailed, Message: fmt.Sprintf("encode board file %s", path), Err: err}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return &LoadError{Code: ErrCodeWriteFailed, Message: fmt.Sprintf("write board file %s", path), Err: err}
	}
	return nil
}

// buildEngine constructs a validated engine from a board file.
// gen may be nil for the UUID default.
func buildEngine(bf *BoardFile, gen board.IDGenerator) (*board.Engine, error) {
	return board.New(bf.Stickers, gen)
}
