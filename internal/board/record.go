package board

// Record is a single sticker on the board.
//
// Stacking order is encoded through LowerID: the id of the record
// directly below this one, or nil for the bottom-most record of a chain.
// A nil pointer is the ONLY absence marker - an empty string is treated
// as an ordinary (if unusual) id value, never as "no lower record".
//
// Data is an opaque payload. The engine stores and copies it but never
// inspects or transforms its contents.
type Record struct {
	ID      string         `json:"id" yaml:"id"`
	LowerID *string        `json:"lower_id,omitempty" yaml:"lower_id,omitempty"`
	Data    map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// Bottom reports whether the record is the bottom of its chain.
func (r Record) Bottom() bool {
	return r.LowerID == nil
}

// LowerRef returns a pointer suitable for Record.LowerID.
// Convenience for building records in callers and tests.
func LowerRef(id string) *string {
	return &id
}

// copyData returns a shallow copy of a record payload.
// Top-level keys are copied into a fresh map; nested values are shared.
// A nil payload stays nil.
func copyData(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
