package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"easel/internal/board"
)

// ErrBoardNotFound is returned by LoadBoard and Fingerprint when no
// board with the given name exists.
var ErrBoardNotFound = errors.New("board not found")

// SaveBoard stores a record set under a board name, replacing any
// previous contents in a single transaction.
//
// Records are stored in the order given; callers normally pass
// Engine.Items() so positions reflect bottom-to-top order. fingerprint
// is the engine's content hash at save time and may be empty.
//
// The store does not validate chain structure - that is the engine's
// job on load.
func (s *Store) SaveBoard(ctx context.Context, name string, records []board.Record, fingerprint string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save board %q: begin tx: %w", name, err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO boards (name, fingerprint, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(name) DO UPDATE SET
			fingerprint = excluded.fingerprint,
			updated_at = excluded.updated_at
	`, name, fingerprint)
	if err != nil {
		return fmt.Errorf("save board %q: upsert board: %w", name, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM stickers WHERE board_name = ?`, name); err != nil {
		return fmt.Errorf("save board %q: clear stickers: %w", name, err)
	}

	for i, r := range records {
		dataJSON, err := marshalData(r.Data)
		if err != nil {
			return fmt.Errorf("save board %q: sticker %q: %w", name, r.ID, err)
		}

		var lower sql.NullString
		if r.LowerID != nil {
			lower = sql.NullString{String: *r.LowerID, Valid: true}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO stickers (board_name, id, lower_id, data, position)
			VALUES (?, ?, ?, ?, ?)
		`, name, r.ID, lower, dataJSON, i)
		if err != nil {
			return fmt.Errorf("save board %q: insert sticker %q: %w", name, r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save board %q: commit: %w", name, err)
	}

	slog.Debug("board saved", "board", name, "stickers", len(records))
	return nil
}

// LoadBoard returns the record set stored under a board name, in saved
// position order. Returns ErrBoardNotFound if the board does not exist.
//
// The returned order is advisory; callers construct an engine from the
// set, which re-validates and re-derives order from lower_id links.
func (s *Store) LoadBoard(ctx context.Context, name string) ([]board.Record, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM boards WHERE name = ?`, name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("load board %q: %w", name, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("load board %q: %w", name, ErrBoardNotFound)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, lower_id, data
		FROM stickers
		WHERE board_name = ?
		ORDER BY position ASC, id ASC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("load board %q: query stickers: %w", name, err)
	}
	defer rows.Close()

	records := []board.Record{}
	for rows.Next() {
		var (
			r     board.Record
			lower sql.NullString
			data  string
		)
		if err := rows.Scan(&r.ID, &lower, &data); err != nil {
			return nil, fmt.Errorf("load board %q: scan sticker: %w", name, err)
		}
		if lower.Valid {
			r.LowerID = board.LowerRef(lower.String)
		}
		if r.Data, err = unmarshalData(data); err != nil {
			return nil, fmt.Errorf("load board %q: sticker %q: %w", name, r.ID, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load board %q: iterate stickers: %w", name, err)
	}

	return records, nil
}

// ListBoards returns all stored board names in lexical order.
// Returns an empty slice (not nil) when the store holds no boards.
func (s *Store) ListBoards(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM boards ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list boards: scan: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list boards: iterate: %w", err)
	}

	return names, nil
}

// DeleteBoard removes a board and (via cascade) its stickers.
// Deleting a nonexistent board is a no-op.
func (s *Store) DeleteBoard(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete board %q: %w", name, err)
	}
	return nil
}

// Fingerprint returns the content hash stored with a board at save
// time. Returns ErrBoardNotFound if the board does not exist.
func (s *Store) Fingerprint(ctx context.Context, name string) (string, error) {
	var fp string
	err := s.db.QueryRowContext(ctx, `SELECT fingerprint FROM boards WHERE name = ?`, name).Scan(&fp)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("fingerprint for board %q: %w", name, ErrBoardNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("fingerprint for board %q: %w", name, err)
	}
	return fp, nil
}

// marshalData serializes a sticker payload for storage.
// A nil payload is stored as the empty JSON object.
func marshalData(data map[string]any) (string, error) {
	if data == nil {
		return "{}", nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal data: %w", err)
	}
	return string(b), nil
}

// unmarshalData deserializes a stored sticker payload.
// The empty JSON object comes back as a nil map, matching unset Data.
func unmarshalData(raw string) (map[string]any, error) {
	if raw == "" || raw == "{}" {
		return nil, nil
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("unmarshal data: %w", err)
	}
	return data, nil
}
