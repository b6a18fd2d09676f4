package truncate

// headLen returns the most leading runes that fit budget.
func (t *Truncator) headLen(runes []rune, budget int) int {
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if t.counter.FitsInLimit(string(runes[:mid]), budget) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// tailStart returns the earliest index whose suffix fits budget.
func (t *Truncator) tailStart(runes []rune, budget int) int {
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi) / 2
		if t.counter.FitsInLimit(string(runes[mid:]), budget) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// keepBothEnds splits budget between the head and the tail.
func (t *Truncator) keepBothEnds(runes []rune, budget int) string {
	head := t.headLen(runes, budget/2)
	tail := t.tailStart(runes[head:], budget-budget/2) + head
	return string(runes[:head]) + t.marker + string(runes[tail:])
}
