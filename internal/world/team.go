package world

// Team tracks score and loss streak for one side. The roster is the set of
// combatants whose Side matches; State indexes them, Team does not own them.
type Team struct {
	Side       Side
	Score      int
	LossStreak int // consecutive lost rounds, scales the loss bonus
}

// RecordWin resets the loss streak.
func (t *Team) RecordWin() {
	t.Score++
	t.LossStreak = 0
}

// RecordLoss increments the loss streak.
func (t *Team) RecordLoss() {
	t.LossStreak++
}

// SwapSides exchanges the scores and streaks of two teams at half time.
// Combatant Side fields are flipped separately by the orchestrator.
func SwapSides(a, b *Team) {
	a.Score, b.Score = b.Score, a.Score
	a.LossStreak, b.LossStreak = b.LossStreak, a.LossStreak
}
