package layout

import "testing"

func squareItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{ID: string(rune('a' + i)), AspectRatio: 1.0}
	}
	return items
}

// The combo cap is shared across the whole search tree, never per branch.
func TestGenerateCombosBounded(t *testing.T) {
	// Wide items overflow the band immediately, which keeps the search
	// exploring longer and longer rows: plenty of branching to cap.
	items := make([]Item, 20)
	for i := range items {
		items[i] = Item{AspectRatio: 2.0}
	}

	for _, maxCombos := range []int{1, 2, 5, 24} {
		combos := generateCombos(items, 0, DefaultBand, DefaultMaxRows, maxCombos)
		if len(combos) == 0 {
			t.Fatalf("maxCombos=%d: no combos generated", maxCombos)
		}
		if len(combos) > maxCombos {
			t.Errorf("maxCombos=%d: got %d combos", maxCombos, len(combos))
		}
	}
}

func TestGenerateCombosRowsAreContiguous(t *testing.T) {
	items := squareItems(9)
	combos := generateCombos(items, 2, DefaultBand, 3, 24)

	if len(combos) == 0 {
		t.Fatal("no combos generated")
	}
	for i, c := range combos {
		if len(c.rows) == 0 {
			t.Fatalf("combo %d has no rows", i)
		}
		next := 2
		for _, row := range c.rows {
			if row.Start != next {
				t.Errorf("combo %d: row starts at %d, want %d", i, row.Start, next)
			}
			if len(row.Items) == 0 {
				t.Errorf("combo %d: empty row", i)
			}
			next = row.End()
		}
		if len(c.rows) < 3 && next != len(items) {
			t.Errorf("combo %d: stopped early at %d with only %d rows", i, next, len(c.rows))
		}
	}
}

func TestGenerateCombosDepthCapped(t *testing.T) {
	combos := generateCombos(squareItems(30), 0, DefaultBand, 3, 24)
	for i, c := range combos {
		if len(c.rows) > 3 {
			t.Errorf("combo %d has %d rows, max 3", i, len(c.rows))
		}
	}
}

// When the remaining items can never reach the band minimum, the search
// must still produce a short trailing row instead of dropping items.
func TestGenerateCombosUnderfilledTrailingRow(t *testing.T) {
	items := squareItems(3) // aggregate reaches 2.0 at two items, the third is stranded
	combos := generateCombos(items, 0, DefaultBand, 3, 24)

	if len(combos) == 0 {
		t.Fatal("no combos generated")
	}
	first := combos[0]
	if len(first.rows) != 2 {
		t.Fatalf("first combo rows = %d, want 2", len(first.rows))
	}
	if got := len(first.rows[0].Items); got != 2 {
		t.Errorf("first row items = %d, want 2", got)
	}
	if got := len(first.rows[1].Items); got != 1 {
		t.Errorf("trailing row items = %d, want 1", got)
	}
	if first.rows[1].Aggregate >= DefaultBand.Min {
		t.Errorf("trailing row aggregate = %v, expected underfilled", first.rows[1].Aggregate)
	}
}

// A row that lands inside the band stops branching from the same start:
// wider variants of it only score worse.
func TestGenerateCombosStopsBranchingInsideBand(t *testing.T) {
	// Two items reach 2.0 (in band); a single search from 0 must not
	// also try three- or four-item first rows.
	items := squareItems(8)
	combos := generateCombos(items, 0, DefaultBand, 1, 24)

	if len(combos) != 1 {
		t.Fatalf("got %d combos, want 1", len(combos))
	}
	if got := len(combos[0].rows[0].Items); got != 2 {
		t.Errorf("first row items = %d, want 2", got)
	}
}

// Overflowing rows keep extending: accepting more cropping now may score
// better downstream, so multiple first-row lengths are explored.
func TestGenerateCombosExtendsOverflowingRows(t *testing.T) {
	items := []Item{
		{ID: "pano", AspectRatio: 4.0},
		{ID: "a", AspectRatio: 1.0},
		{ID: "b", AspectRatio: 1.0},
	}
	combos := generateCombos(items, 0, DefaultBand, 1, 24)

	if len(combos) < 2 {
		t.Fatalf("got %d combos, want at least 2 first-row lengths", len(combos))
	}
	lengths := make(map[int]bool)
	for _, c := range combos {
		lengths[len(c.rows[0].Items)] = true
	}
	if !lengths[1] || !lengths[2] {
		t.Errorf("first-row lengths explored = %v, want both 1 and 2", lengths)
	}
}
