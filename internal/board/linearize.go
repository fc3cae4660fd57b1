package board

// linearize validates a record set and returns it in canonical
// bottom-to-top order.
//
// Validation runs in three fail-fast steps over the raw input:
//  1. identity uniqueness (DUPLICATE_ID)
//  2. referential integrity of every LowerID (DANGLING_REFERENCE)
//  3. acyclicity of the LowerID relation (CYCLE_DETECTED)
//
// Ordering is the unique topological order consistent with the LowerID
// relation: a record is placed only after the record below it. Records
// already placed are skipped, so the result is deterministic for a given
// input order. Disjoint chains (multiple bottom records) are accepted
// and concatenated; their relative order follows the input but is an
// explicit non-guarantee of the engine.
//
// All walks use explicit worklists - no recursion, no depth limit.
func linearize(records []Record) ([]Record, error) {
	byID := make(map[string]Record, len(records))
	for _, r := range records {
		if _, dup := byID[r.ID]; dup {
			return nil, newDuplicateIDError(r.ID)
		}
		byID[r.ID] = r
	}

	for _, r := range records {
		if r.LowerID == nil {
			continue
		}
		if _, ok := byID[*r.LowerID]; !ok {
			return nil, newDanglingReferenceError(r.ID, *r.LowerID)
		}
	}

	// Cycle check: walk each chain downward, tracking ids visited within
	// the current walk. Ids proven to reach a bottom are remembered so
	// shared tails are not re-walked (linear overall).
	settled := make(map[string]bool, len(records))
	for _, r := range records {
		if settled[r.ID] {
			continue
		}
		inWalk := make(map[string]bool)
		walk := make([]string, 0, 8)
		cur := r
		for {
			if settled[cur.ID] {
				break
			}
			if inWalk[cur.ID] {
				return nil, newCycleError(cur.ID)
			}
			inWalk[cur.ID] = true
			walk = append(walk, cur.ID)
			if cur.LowerID == nil {
				break
			}
			cur = byID[*cur.LowerID]
		}
		for _, id := range walk {
			settled[id] = true
		}
	}

	// Linearization: for each record in input order, descend to the
	// deepest unplaced record below it, then place that segment bottom
	// first.
	placed := make(map[string]bool, len(records))
	ordered := make([]Record, 0, len(records))
	for _, r := range records {
		if placed[r.ID] {
			continue
		}
		segment := []Record{r}
		cur := r
		for cur.LowerID != nil && !placed[*cur.LowerID] {
			cur = byID[*cur.LowerID]
			segment = append(segment, cur)
		}
		for i := len(segment) - 1; i >= 0; i-- {
			ordered = append(ordered, segment[i])
			placed[segment[i].ID] = true
		}
	}

	return ordered, nil
}
