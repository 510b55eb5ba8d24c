package filter

// QuadrantSwap exchanges the top-left quadrant with the bottom-right and the
// top-right with the bottom-left, in place. On even dimensions this moves
// the array origin between the corner and the center, and applying it twice
// restores the original layout.
func QuadrantSwap(m *Mask) {
	halfW := m.Width / evenDivisor
	halfH := m.Height / evenDivisor

	for y := range halfH {
		top := m.Row(y)
		bottom := m.Row(y + halfH)
		for x := range halfW {
			top[x], bottom[x+halfW] = bottom[x+halfW], top[x]
			top[x+halfW], bottom[x] = bottom[x], top[x+halfW]
		}
	}
}
