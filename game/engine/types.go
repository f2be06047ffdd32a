package engine

// Obstacle represents the static classification of a grid cell
type Obstacle string

const (
	ObstacleNone Obstacle = ""
	Wall         Obstacle = "wall"
	Lava         Obstacle = "lava"
)

// Kind is the type tag carried by every actor
type Kind string

const (
	KindActor    Kind = "actor"
	KindPlayer   Kind = "player"
	KindCoin     Kind = "coin"
	KindFireball Kind = "fireball"
)

// Status is the outcome of a level. The zero value means the level is still being played.
type Status string

const (
	StatusPlaying Status = ""
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

const (
	// Symbols the parser reserves for obstacles
	WallSymbol = 'x'
	LavaSymbol = '!'

	DefaultFinishDelay = 1.0
	DefaultTickSeconds = 0.02
	MaxTickSeconds     = 1.0
	FireballSpeed      = 2.0
)

// LevelState is a JSON-friendly snapshot of a level
type LevelState struct {
	Name        string       `json:"name,omitempty"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Rows        []string     `json:"rows"`
	Actors      []ActorState `json:"actors"`
	Status      Status       `json:"status,omitempty"`
	FinishDelay float64      `json:"finish_delay"`
	Finished    bool         `json:"finished"`
	CoinsLeft   int          `json:"coins_left"`
	Ticks       int          `json:"ticks"`
}

// ActorState describes a single actor inside a LevelState
type ActorState struct {
	Type  Kind   `json:"type"`
	Pos   Vector `json:"pos"`
	Size  Vector `json:"size"`
	Speed Vector `json:"speed"`
}
