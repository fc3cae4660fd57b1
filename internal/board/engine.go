package board

import "log/slog"

// Engine owns the canonical bottom-to-top sequence of one board.
//
// The sequence is derived once at construction and thereafter mutated
// only through Add (append at top). There is no removal or interior
// reordering operation.
//
// Failed operations leave the engine unchanged: construction either
// yields a fully validated engine or no engine at all, and Add/Extract
// are all-or-nothing.
//
// Not safe for concurrent use; callers serialize access per instance.
type Engine struct {
	records []Record // bottom to top
	idgen   IDGenerator
}

// New validates a record set and builds an engine over it.
//
// The input may be in any order and may be empty (an empty engine is
// valid). Validation failures are returned as *ValidationError with
// codes DUPLICATE_ID, DANGLING_REFERENCE, or CYCLE_DETECTED.
//
// gen supplies identifiers for Extract. Passing nil selects
// UUIDGenerator; tests pass a SequenceGenerator for determinism.
func New(records []Record, gen IDGenerator) (*Engine, error) {
	ordered, err := linearize(records)
	if err != nil {
		return nil, err
	}
	if gen == nil {
		gen = UUIDGenerator{}
	}
	slog.Debug("board engine built", "records", len(ordered))
	return &Engine{records: ordered, idgen: gen}, nil
}

// Len returns the number of records on the board.
func (e *Engine) Len() int {
	return len(e.records)
}

// Items returns the bottom-to-top sequence in a fresh slice.
//
// The slice is independent of engine state (caller mutation of the
// container has no effect on the engine), but the records themselves are
// the engine's values - their payload maps are shared, not cloned.
func (e *Engine) Items() []Record {
	out := make([]Record, len(e.records))
	copy(out, e.records)
	return out
}

// Top returns the top-most record. The second return is false when the
// board is empty.
func (e *Engine) Top() (Record, bool) {
	if len(e.records) == 0 {
		return Record{}, false
	}
	return e.records[len(e.records)-1], true
}

// Add appends a record as the new top.
//
// Preconditions:
//   - r.ID must not collide with any record on the board (DUPLICATE_ID)
//   - r.LowerID must name the current top record, or be nil when the
//     board is empty (BROKEN_CHAIN otherwise)
//
// The empty-board case needs its own branch: an absent top and a nil
// LowerID cannot be compared by id, they only match by both being absent.
func (e *Engine) Add(r Record) error {
	for _, existing := range e.records {
		if existing.ID == r.ID {
			return newDuplicateIDError(r.ID)
		}
	}

	top, ok := e.Top()
	if !ok {
		if r.LowerID != nil {
			return newBrokenChainError(r.ID, *r.LowerID)
		}
	} else {
		if r.LowerID == nil {
			return newBrokenChainError(r.ID, "")
		}
		if *r.LowerID != top.ID {
			return newBrokenChainError(r.ID, *r.LowerID)
		}
	}

	e.records = append(e.records, r)
	slog.Debug("record appended", "id", r.ID, "records", len(e.records))
	return nil
}

// Extract builds a new, self-consistent chain from a selection of
// records already on the board.
//
// Selection entries are matched by id only; membership and order are
// arbitrary, and NOT_FOUND is returned for any id absent from the board.
//
// The output contains one record per selection entry, ordered and linked
// by the board's own bottom-to-top order (never the order the caller
// supplied). Each output record carries a shallow copy of the source
// payload and a freshly generated id; the board-lowest selected record
// gets a nil LowerID and every subsequent record points at the fresh id
// of the one below it.
//
// Neither the engine's records nor the caller's selection are modified,
// and generated ids are disjoint from every id on the board and from
// each other.
func (e *Engine) Extract(selection []Record) ([]Record, error) {
	position := make(map[string]int, len(e.records))
	known := make(map[string]struct{}, len(e.records)+len(selection))
	for i, r := range e.records {
		position[r.ID] = i
		known[r.ID] = struct{}{}
	}

	indices := make([]int, 0, len(selection))
	for _, sel := range selection {
		idx, ok := position[sel.ID]
		if !ok {
			return nil, newNotFoundError(sel.ID)
		}
		indices = append(indices, idx)
	}

	// Board-relative order: sort selected positions ascending. Selection
	// sizes are small; insertion sort keeps this dependency-free.
	for i := 1; i < len(indices); i++ {
		for j := i; j > 0 && indices[j-1] > indices[j]; j-- {
			indices[j-1], indices[j] = indices[j], indices[j-1]
		}
	}

	out := make([]Record, 0, len(indices))
	var lower *string
	for _, idx := range indices {
		src := e.records[idx]
		id := e.freshID(known)
		known[id] = struct{}{}
		out = append(out, Record{
			ID:      id,
			LowerID: lower,
			Data:    copyData(src.Data),
		})
		lower = LowerRef(id)
	}

	slog.Debug("selection extracted", "selected", len(out))
	return out, nil
}

// freshID asks the generator for an id not yet in known.
//
// Collisions are re-asked rather than surfaced: the disjointness
// guarantee of Extract must hold even when the injected generator
// repeats values. A generator with a finite value space smaller than the
// board (e.g., an exhausted SequenceGenerator restarted with the same
// prefix) would loop; production generators are UUID-sized.
func (e *Engine) freshID(known map[string]struct{}) string {
	for {
		id := e.idgen.Generate()
		if _, taken := known[id]; !taken {
			return id
		}
	}
}
