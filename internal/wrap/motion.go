package wrap

// MoveVertical moves a logical cursor position by delta visual rows,
// carrying the sticky desired column. desired is the visual column the
// user is aiming for across repeated moves, or -1 when unset (the current
// visual column is adopted and returned so the caller can persist it).
//
// The resulting logical column is clamped to the target line's length.
// moved is false when no row exists in that direction, in which case the
// cursor is unchanged. An invalid cache degrades to plain logical-line
// motion, which is also the wrap-off behavior.
func (c *Cache) MoveVertical(doc Document, line, col, desired, delta int) (newLine, newCol, newDesired int, moved bool) {
	if !c.valid {
		return moveLogical(doc, line, col, desired, delta)
	}

	row, vcol := c.ToVisual(line, col)
	if desired < 0 {
		desired = vcol
	}
	target := row + delta
	if target < 0 || target >= c.TotalRows() {
		return line, col, desired, false
	}

	newLine, newCol = c.ToLogical(target, desired)
	if max := doc.LineLen(newLine); newCol > max {
		newCol = max
	}
	return newLine, newCol, desired, true
}

// moveLogical is the unwrapped vertical motion: one logical line per step,
// still honoring the desired column so short lines do not eat it.
func moveLogical(doc Document, line, col, desired, delta int) (int, int, int, bool) {
	if desired < 0 {
		desired = col
	}
	target := line + delta
	if target < 0 || target >= doc.LineCount() {
		return line, col, desired, false
	}
	col = desired
	if max := doc.LineLen(target); col > max {
		col = max
	}
	return target, col, desired, true
}
