package engine

// Constructor builds an actor placed at the given grid position. Entries
// that return an error or a nil actor are skipped by the parser.
type Constructor func(pos Vector) (*Actor, error)

// LevelParser builds levels from rows of text
type LevelParser struct {
	symbols map[rune]Constructor
}

// NewLevelParser creates a parser using symbols to place actors. A nil map is allowed.
func NewLevelParser(symbols map[rune]Constructor) *LevelParser {
	return &LevelParser{symbols: symbols}
}

// ActorFromSymbol returns the constructor registered for r, or nil
func (p *LevelParser) ActorFromSymbol(r rune) Constructor {
	if p.symbols == nil {
		return nil
	}
	return p.symbols[r]
}

// ObstacleFromSymbol maps 'x' to a wall and '!' to lava. Everything else is empty.
func (p *LevelParser) ObstacleFromSymbol(r rune) Obstacle {
	switch r {
	case WallSymbol:
		return Wall
	case LavaSymbol:
		return Lava
	default:
		return ObstacleNone
	}
}

// CreateGrid maps every character of rows to its obstacle, keeping ragged row lengths
func (p *LevelParser) CreateGrid(rows []string) [][]Obstacle {
	grid := make([][]Obstacle, len(rows))
	for y, row := range rows {
		symbols := []rune(row)
		line := make([]Obstacle, len(symbols))
		for x, r := range symbols {
			line[x] = p.ObstacleFromSymbol(r)
		}
		grid[y] = line
	}
	return grid
}

// CreateActors instantiates an actor for every symbol with a registered constructor
func (p *LevelParser) CreateActors(rows []string) []*Actor {
	actors := []*Actor{}
	for y, row := range rows {
		for x, r := range []rune(row) {
			construct := p.ActorFromSymbol(r)
			if construct == nil {
				continue
			}
			actor, err := construct(Vec(float64(x), float64(y)))
			if err != nil || actor == nil {
				continue
			}
			actors = append(actors, actor)
		}
	}
	return actors
}

// Parse builds a level from rows
func (p *LevelParser) Parse(rows []string) *Level {
	return NewLevel(p.CreateGrid(rows), p.CreateActors(rows))
}
