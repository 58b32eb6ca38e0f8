package game

// PenaltyPerBug is the score percentage lost per unresolved bug.
const PenaltyPerBug = 2

// Score computes the end-of-round score from the bug history:
// max(0, 100 - PenaltyPerBug*unresolved). It is pure and is evaluated
// exactly once, at the playing->ended transition.
func Score(history []ResolvedBug) int {
	unresolved := 0
	for _, b := range history {
		if b.Status == BugUnresolved {
			unresolved++
		}
	}
	s := 100 - unresolved*PenaltyPerBug
	if s < 0 {
		s = 0
	}
	return s
}
