package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainOrder walks the output of Extract from its bottom record upward
// and returns the ids in chain order, failing if the records do not form
// exactly one well-formed chain.
func chainOrder(t *testing.T, records []Record) []string {
	t.Helper()

	byLower := make(map[string]Record)
	var bottom *Record
	for i := range records {
		r := records[i]
		if r.LowerID == nil {
			require.Nil(t, bottom, "exactly one record may have a nil LowerID")
			bottom = &records[i]
			continue
		}
		_, dup := byLower[*r.LowerID]
		require.False(t, dup, "no two records may share a lower reference")
		byLower[*r.LowerID] = r
	}
	require.NotNil(t, bottom, "a chain needs a bottom record")

	order := []string{bottom.ID}
	cur := *bottom
	for {
		next, ok := byLower[cur.ID]
		if !ok {
			break
		}
		order = append(order, next.ID)
		cur = next
	}
	require.Len(t, order, len(records), "every record must be reachable from the bottom")
	return order
}

// =============================================================================
// Ordering
// =============================================================================

func TestExtract_PreservesBoardOrder(t *testing.T) {
	e := newTestEngine(t, stack("dog", "cat", "hamster", "rabbit"))

	// Selection order is deliberately reversed relative to the board.
	out, err := e.Extract([]Record{{ID: "rabbit"}, {ID: "dog"}, {ID: "hamster"}})
	require.NoError(t, err)
	require.Len(t, out, 3)

	order := chainOrder(t, out)
	require.Len(t, order, 3)

	// The fresh chain must mirror board order dog < hamster < rabbit.
	// Sequence ids are assigned bottom-up, so positions map 1:1.
	assert.Equal(t, "gen-1", order[0])
	assert.Equal(t, "gen-2", order[1])
	assert.Equal(t, "gen-3", order[2])
}

func TestExtract_SelectionOrderIrrelevant(t *testing.T) {
	selections := [][]Record{
		{{ID: "dog"}, {ID: "hamster"}},
		{{ID: "hamster"}, {ID: "dog"}},
	}

	for _, sel := range selections {
		e := newTestEngine(t, stack("dog", "cat", "hamster"))
		out, err := e.Extract(sel)
		require.NoError(t, err)

		order := chainOrder(t, out)
		// dog sits below hamster on the board, so the record copied from
		// dog must be the bottom of the fresh chain.
		bottomData := recordByID(t, out, order[0])
		assert.Nil(t, bottomData.LowerID)
	}
}

func TestExtract_CopiesPayload(t *testing.T) {
	records := stack("dog", "cat")
	records[0].Data = map[string]any{"color": "brown"}
	e := newTestEngine(t, records)

	out, err := e.Extract([]Record{{ID: "dog"}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, map[string]any{"color": "brown"}, out[0].Data)

	// Shallow copy: mutating the extracted payload must not leak into
	// the engine's record.
	out[0].Data["color"] = "green"
	items := e.Items()
	assert.Equal(t, "brown", items[0].Data["color"])
}

func TestExtract_SingleRecord(t *testing.T) {
	e := newTestEngine(t, stack("dog", "cat"))

	out, err := e.Extract([]Record{{ID: "cat"}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Nil(t, out[0].LowerID, "a single extracted record is its own bottom")
	assert.Equal(t, "gen-1", out[0].ID)
}

func TestExtract_EmptySelection(t *testing.T) {
	e := newTestEngine(t, stack("dog"))

	out, err := e.Extract(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

// =============================================================================
// Guarantees
// =============================================================================

func TestExtract_FreshIDsDisjoint(t *testing.T) {
	e := newTestEngine(t, stack("dog", "cat", "hamster"))

	out, err := e.Extract([]Record{{ID: "dog"}, {ID: "cat"}, {ID: "hamster"}})
	require.NoError(t, err)

	onBoard := map[string]bool{"dog": true, "cat": true, "hamster": true}
	seen := make(map[string]bool)
	for _, r := range out {
		assert.False(t, onBoard[r.ID], "generated id %q collides with the board", r.ID)
		assert.False(t, seen[r.ID], "generated id %q repeated in output", r.ID)
		seen[r.ID] = true
	}
}

func TestExtract_RetriesOnGeneratorCollision(t *testing.T) {
	// The board already holds "gen-1", which is the first value the
	// sequence generator produces. Extract must skip it.
	records := []Record{
		{ID: "gen-1"},
		{ID: "cat", LowerID: LowerRef("gen-1")},
	}
	e, err := New(records, NewSequenceGenerator("gen-"))
	require.NoError(t, err)

	out, err := e.Extract([]Record{{ID: "gen-1"}, {ID: "cat"}})
	require.NoError(t, err)

	order := chainOrder(t, out)
	assert.Equal(t, []string{"gen-2", "gen-3"}, order)
}

func TestExtract_DoesNotMutateInputsOrEngine(t *testing.T) {
	records := stack("dog", "cat")
	records[1].Data = map[string]any{"note": "keep"}
	e := newTestEngine(t, records)
	before := e.Items()

	selection := []Record{
		{ID: "cat", LowerID: LowerRef("stale"), Data: map[string]any{"note": "mine"}},
		{ID: "dog"},
	}
	snapshot := []Record{
		{ID: "cat", LowerID: LowerRef("stale"), Data: map[string]any{"note": "mine"}},
		{ID: "dog"},
	}

	_, err := e.Extract(selection)
	require.NoError(t, err)

	assert.Equal(t, snapshot, selection, "selection records must be unchanged")
	assert.Equal(t, before, e.Items(), "engine state must be unchanged")
}

func TestExtract_NotFound(t *testing.T) {
	e := newTestEngine(t, stack("dog", "cat"))

	_, err := e.Extract([]Record{{ID: "missing"}})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "missing", ve.RecordID)
}

func TestExtract_NotFoundAmongValid(t *testing.T) {
	e := newTestEngine(t, stack("dog", "cat"))

	_, err := e.Extract([]Record{{ID: "dog"}, {ID: "ghost"}})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func recordByID(t *testing.T, records []Record, id string) Record {
	t.Helper()
	for _, r := range records {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("record %q not found", id)
	return Record{}
}
