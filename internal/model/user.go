package model

// User is a synthetic account that authors command events.
// Users are created once per run and never modified afterwards.
type User struct {
	ID          int
	Name        string
	ShellType   string
	HomeDir     string
	ThreatLevel int // 0..MaxThreatLevel, never emitted

	// ActivityWeight is the relative chance this user authors any given event.
	ActivityWeight float64
}

// MaxThreatLevel is the highest latent threat level a user can carry.
const MaxThreatLevel = 4
