package gateway

// Wire messages. Every message is a msgpack map with a "type" discriminator
// so clients can decode the envelope before committing to a payload shape.

const (
	// client -> server
	MsgTypeHello  = "hello"
	MsgTypeIntent = "intent"

	// server -> client
	MsgTypeWelcome  = "welcome"
	MsgTypeReject   = "reject"
	MsgTypeSnapshot = "snapshot"
	MsgTypeEvent    = "event"
	MsgTypeNotice   = "notice"
)

// HelloMsg is the first client message: display name plus the server password
// (ignored on open servers).
type HelloMsg struct {
	Type     string `msgpack:"type"`
	Name     string `msgpack:"name"`
	Password string `msgpack:"password"`
}

// IntentMsg carries one sampled input frame.
type IntentMsg struct {
	Type string `msgpack:"type"`

	MoveX     float64 `msgpack:"mx"`
	MoveZ     float64 `msgpack:"mz"`
	LookYaw   float64 `msgpack:"yaw"`
	LookPitch float64 `msgpack:"pitch"`

	Jump         bool `msgpack:"jump"`
	CrouchToggle bool `msgpack:"crouch"`
	Run          bool `msgpack:"run"`

	FirePressed bool `msgpack:"fire"`
	FireHeld    bool `msgpack:"fire_held"`
	Reload      bool `msgpack:"reload"`
	Interact    bool `msgpack:"interact"`
	ScopeToggle bool `msgpack:"scope"`

	SwitchSlot int   `msgpack:"slot"`   // 0 = no switch, otherwise slot+1
	BuyWeapon  int32 `msgpack:"buy"`    // 0 = no purchase
	BuyArmor   bool  `msgpack:"armor"`
	Drop       bool  `msgpack:"drop"`
}

// WelcomeMsg acknowledges a join.
type WelcomeMsg struct {
	Type        string `msgpack:"type"`
	CombatantID int64  `msgpack:"id"`
	ServerName  string `msgpack:"server"`
	MapName     string `msgpack:"map"`
	TickRateMS  int64  `msgpack:"tick_ms"`
}

// RejectMsg refuses a join (bad password, duplicate hello).
type RejectMsg struct {
	Type   string `msgpack:"type"`
	Reason string `msgpack:"reason"`
}

// EventMsg is a one-way game notification: kills, bomb state, phase changes.
type EventMsg struct {
	Type string `msgpack:"type"`
	Kind string `msgpack:"kind"`

	ActorID  int64  `msgpack:"actor,omitempty"`
	TargetID int64  `msgpack:"target,omitempty"`
	WeaponID int32  `msgpack:"weapon,omitempty"`
	Headshot bool   `msgpack:"headshot,omitempty"`
	Site     string `msgpack:"site,omitempty"`
	Round    int    `msgpack:"round,omitempty"`
	Phase    string `msgpack:"phase,omitempty"`
	Winner   string `msgpack:"winner,omitempty"`
	Reason   string `msgpack:"reason,omitempty"`
	ScoreT   int    `msgpack:"score_t,omitempty"`
	ScoreCT  int    `msgpack:"score_ct,omitempty"`
}

// NoticeMsg is a human-readable line for the client HUD.
type NoticeMsg struct {
	Type string `msgpack:"type"`
	Text string `msgpack:"text"`
}

// envelope is decoded first to pick the payload type.
type envelope struct {
	Type string `msgpack:"type"`
}
