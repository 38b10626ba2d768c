package quiz

// Steps is the number of questions in one session (tier 1..15, index 0..14).
const Steps = 15

// PrizeLadder holds the prize for each position, strictly increasing.
var PrizeLadder = [Steps]int64{
	1000, 2000, 3000, 5000, 7500,
	15000, 30000, 60000, 125000, 250000,
	500000, 1000000, 2000000, 5000000, 10000000,
}

// safeZones are the 0-based positions whose prize is retained after a later
// wrong answer (tiers 5 and 10).
var safeZones = map[int]bool{4: true, 9: true}

// IsSafeZone reports whether the given position is a safe zone.
func IsSafeZone(position int) bool {
	return safeZones[position]
}

// Prize returns the ladder prize at the given position, or 0 out of range.
func Prize(position int) int64 {
	if position < 0 || position >= Steps {
		return 0
	}
	return PrizeLadder[position]
}

// SafePayout returns the prize retained after a wrong answer at the given
// position: the highest safe-zone prize at an index the player has already
// answered (index <= position-1), or 0 when no safe zone was passed.
func SafePayout(position int) int64 {
	best := int64(0)
	for idx := range safeZones {
		if idx <= position-1 && PrizeLadder[idx] > best {
			best = PrizeLadder[idx]
		}
	}
	return best
}

// WithdrawPayout returns the prize for walking away at the given position:
// the last answered question's prize, or 0 before any answer.
func WithdrawPayout(position int) int64 {
	if position <= 0 {
		return 0
	}
	return PrizeLadder[position-1]
}
