package event

// Simulation events. Emitted during a tick, delivered at the start of the
// next one (double-buffered bus). Consumers are one-way: the gateway
// broadcaster, the match-history reporter, and logging. The simulation never
// depends on a subscriber acknowledging anything.

type PlayerJoined struct {
	CombatantID int64
	Name        string
	Team        string
}

type PlayerLeft struct {
	CombatantID int64
	Name        string
}

type Kill struct {
	KillerID int64
	VictimID int64
	WeaponID int32
	Headshot bool
}

type Damage struct {
	AttackerID int64
	TargetID   int64
	Amount     int
	Location   string
}

type BombPlanted struct {
	PlanterID int64
	Site      string
}

type BombDefused struct {
	DefuserID int64
	Site      string
}

type BombExploded struct {
	Site string
}

type PhaseChanged struct {
	Round int
	Phase string
}

type RoundEnded struct {
	Round       int
	Winner      string
	Reason      string
	ScoreT      int
	ScoreCT     int
}

type MatchEnded struct {
	Winner  string
	ScoreT  int
	ScoreCT int
	Rounds  int
}

type Notice struct {
	CombatantID int64 // 0 = broadcast to everyone
	Text        string
}
