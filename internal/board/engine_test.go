package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stack builds a single chain of records, bottom first.
// stack("dog", "cat") returns dog (bottom) and cat with LowerID "dog".
func stack(ids ...string) []Record {
	records := make([]Record, 0, len(ids))
	for i, id := range ids {
		r := Record{ID: id}
		if i > 0 {
			r.LowerID = LowerRef(ids[i-1])
		}
		records = append(records, r)
	}
	return records
}

func newTestEngine(t *testing.T, records []Record) *Engine {
	t.Helper()
	e, err := New(records, NewSequenceGenerator("gen-"))
	require.NoError(t, err)
	return e
}

// =============================================================================
// Construction
// =============================================================================

func TestNew_EmptyInput(t *testing.T) {
	e, err := New(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, e.Len())
	assert.Empty(t, e.Items())

	_, ok := e.Top()
	assert.False(t, ok, "empty board has no top")
}

func TestNew_SingleRecord(t *testing.T) {
	e := newTestEngine(t, stack("dog"))

	top, ok := e.Top()
	require.True(t, ok)
	assert.Equal(t, "dog", top.ID)
	assert.True(t, top.Bottom())
}

func TestNew_DefaultsToUUIDGenerator(t *testing.T) {
	e, err := New(stack("dog"), nil)
	require.NoError(t, err)

	out, err := e.Extract([]Record{{ID: "dog"}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Len(t, out[0].ID, 36, "nil generator should fall back to UUIDs")
}

// =============================================================================
// Items / Top
// =============================================================================

func TestItems_BottomToTop(t *testing.T) {
	e := newTestEngine(t, stack("dog", "cat", "hamster"))

	items := e.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "dog", items[0].ID)
	assert.Equal(t, "cat", items[1].ID)
	assert.Equal(t, "hamster", items[2].ID)

	top, ok := e.Top()
	require.True(t, ok)
	assert.Equal(t, items[2], top, "top equals last element of Items")
}

func TestItems_IdempotentRead(t *testing.T) {
	e := newTestEngine(t, stack("dog", "cat"))

	first := e.Items()
	second := e.Items()
	assert.Equal(t, first, second)

	topA, _ := e.Top()
	topB, _ := e.Top()
	assert.Equal(t, topA, topB)
}

func TestItems_ContainerIsIndependent(t *testing.T) {
	e := newTestEngine(t, stack("dog", "cat"))

	items := e.Items()
	items[0] = Record{ID: "mutated"}
	items = items[:1]
	_ = items

	fresh := e.Items()
	require.Len(t, fresh, 2)
	assert.Equal(t, "dog", fresh[0].ID, "mutating the returned container must not affect the engine")
}

// =============================================================================
// Add
// =============================================================================

func TestAdd_AppendsAtTop(t *testing.T) {
	e := newTestEngine(t, stack("dog", "cat"))
	before := e.Items()

	r := Record{ID: "hamster", LowerID: LowerRef("cat")}
	require.NoError(t, e.Add(r))

	after := e.Items()
	require.Len(t, after, 3)
	assert.Equal(t, before, after[:2], "append preserves the existing prefix")
	assert.Equal(t, r, after[2])

	top, ok := e.Top()
	require.True(t, ok)
	assert.Equal(t, r, top)
}

func TestAdd_DuplicateID(t *testing.T) {
	e := newTestEngine(t, stack("dog", "cat"))

	err := e.Add(Record{ID: "cat", LowerID: LowerRef("cat")})
	require.Error(t, err)
	assert.True(t, IsDuplicateID(err))
	assert.Equal(t, 2, e.Len(), "failed add leaves the engine unchanged")
}

func TestAdd_WrongLower(t *testing.T) {
	e := newTestEngine(t, stack("dog", "cat"))

	err := e.Add(Record{ID: "x", LowerID: LowerRef("wrong")})
	require.Error(t, err)
	assert.True(t, IsBrokenChain(err))
	assert.Equal(t, 2, e.Len())
}

func TestAdd_NilLowerOnNonEmptyBoard(t *testing.T) {
	e := newTestEngine(t, stack("dog"))

	err := e.Add(Record{ID: "cat"})
	require.Error(t, err)
	assert.True(t, IsBrokenChain(err))
}

func TestAdd_EmptyBoardRequiresNilLower(t *testing.T) {
	e := newTestEngine(t, nil)

	// Non-nil lower cannot match an absent top.
	err := e.Add(Record{ID: "dog", LowerID: LowerRef("ghost")})
	require.Error(t, err)
	assert.True(t, IsBrokenChain(err))
	assert.Equal(t, 0, e.Len())

	// Nil lower is the only valid first record.
	require.NoError(t, e.Add(Record{ID: "dog"}))
	top, ok := e.Top()
	require.True(t, ok)
	assert.Equal(t, "dog", top.ID)
}

func TestAdd_EmptyStringLowerIsNotAbsent(t *testing.T) {
	e := newTestEngine(t, nil)

	// "" is an id value, not an absence marker, so it must fail against
	// an empty board just like any other id.
	err := e.Add(Record{ID: "dog", LowerID: LowerRef("")})
	require.Error(t, err)
	assert.True(t, IsBrokenChain(err))
}

func TestAdd_SequenceGrowsOneAtATime(t *testing.T) {
	e := newTestEngine(t, nil)

	require.NoError(t, e.Add(Record{ID: "dog"}))
	require.NoError(t, e.Add(Record{ID: "cat", LowerID: LowerRef("dog")}))
	require.NoError(t, e.Add(Record{ID: "hamster", LowerID: LowerRef("cat")}))

	items := e.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "dog", items[0].ID)
	assert.Equal(t, "hamster", items[2].ID)
}
