package layout

import "slices"

// combo is one candidate continuation of the partition: up to maxRows
// contiguous rows starting at the current cursor. Combos exist only to
// choose the next accepted row and are discarded after each step.
type combo struct {
	rows  []Row
	score float64
}

// comboSearch holds the state of one bounded lookahead search. The
// produced counter is shared across the entire recursion, so maxCombos
// caps the whole tree rather than each branch; in-flight recursion still
// unwinds normally once the cap is hit.
type comboSearch struct {
	items     []Item
	band      Band
	maxRows   int
	maxCombos int

	produced int
	combos   []combo
}

// generateCombos produces candidate continuations from cursor. It never
// returns more than maxCombos combos, and always returns at least one
// when cursor is in range and maxCombos >= 1.
func generateCombos(items []Item, cursor int, band Band, maxRows, maxCombos int) []combo {
	s := &comboSearch{
		items:     items,
		band:      band,
		maxRows:   maxRows,
		maxCombos: maxCombos,
	}
	s.extend(nil, cursor, 0)
	return s.combos
}

// extend grows one more candidate row starting at next, recursing for
// each viable row length. acc carries the partial combo's score so a
// finished combo is recorded without re-walking its rows.
func (s *comboSearch) extend(partial []Row, next int, acc float64) {
	if s.produced >= s.maxCombos {
		return
	}
	if len(partial) == s.maxRows || next >= len(s.items) {
		s.record(partial, acc)
		return
	}

	var underfilled *Row
	reachedBand := false
	aggregate := 0.0

	for end := next; end < len(s.items) && s.produced < s.maxCombos; end++ {
		aggregate += s.items[end].AspectRatio
		row := Row{Start: next, Items: s.items[next : end+1], Aggregate: aggregate}

		if aggregate < s.band.Min {
			// Too narrow to stand on its own yet. Keep the widest such
			// candidate in case the sequence runs out before the band.
			underfilled = &row
			continue
		}

		reachedBand = true
		s.extend(append(partial, row), row.End(), acc+score(aggregate, s.band))

		if aggregate < s.band.Max {
			// The row landed inside the band. Any wider row from this
			// start only scores worse, so stop branching here.
			return
		}
		// Already over the band: wider rows crop more now but may score
		// better downstream, so keep exploring until the cap or the end.
	}

	if !reachedBand && underfilled != nil {
		// The remaining items never reach the band minimum. Accept a
		// short trailing row rather than dropping items.
		s.extend(append(partial, *underfilled), underfilled.End(),
			acc+score(underfilled.Aggregate, s.band))
	}
}

// record stores a completed combo, honoring the shared cap.
func (s *comboSearch) record(rows []Row, comboScore float64) {
	if s.produced >= s.maxCombos {
		return
	}
	s.combos = append(s.combos, combo{rows: slices.Clone(rows), score: comboScore})
	s.produced++
}
