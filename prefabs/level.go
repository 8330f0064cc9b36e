package prefabs

import "fmt"

type PlacementKind int

const (
	PlaceSolid PlacementKind = iota
	PlaceCalmOnly
	PlaceAlteredOnly
	PlaceCrumble
	PlaceCrumbleOnce
	PlaceMover
	PlacePickup
	PlaceEnemy
	PlaceHazard
	PlacePlayerSpawn
)

type Placement struct {
	Kind PlacementKind
	Col  int
	Row  int
}

// Level is a parsed grid: a list of typed cell placements plus the
// LevelSpec's tuning blocks.
type Level struct {
	Name       string
	Cols       int
	Rows       int
	Placements []Placement
	Spec       *LevelSpec
}

// ParseLevel turns a LevelSpec's ASCII rows into placements. Exactly one
// player spawn is required. Unknown characters fail the parse so a typo'd
// level never loads half-built.
func ParseLevel(spec *LevelSpec) (*Level, error) {
	if spec == nil || len(spec.Rows) == 0 {
		return nil, fmt.Errorf("prefabs: level %q has no rows", levelName(spec))
	}

	level := &Level{
		Name: spec.Name,
		Rows: len(spec.Rows),
		Spec: spec,
	}

	spawns := 0
	for row, line := range spec.Rows {
		if len(line) > level.Cols {
			level.Cols = len(line)
		}
		for col, ch := range line {
			var kind PlacementKind
			switch ch {
			case ' ', '.':
				continue
			case '#':
				kind = PlaceSolid
			case 'c':
				kind = PlaceCalmOnly
			case 'a':
				kind = PlaceAlteredOnly
			case '~':
				kind = PlaceCrumble
			case '!':
				kind = PlaceCrumbleOnce
			case 'm':
				kind = PlaceMover
			case 'o':
				kind = PlacePickup
			case 'E':
				kind = PlaceEnemy
			case '^':
				kind = PlaceHazard
			case 'P':
				kind = PlacePlayerSpawn
				spawns++
			default:
				return nil, fmt.Errorf("prefabs: level %q row %d col %d: unknown cell %q", spec.Name, row, col, string(ch))
			}
			level.Placements = append(level.Placements, Placement{Kind: kind, Col: col, Row: row})
		}
	}

	if spawns != 1 {
		return nil, fmt.Errorf("prefabs: level %q needs exactly one player spawn, found %d", spec.Name, spawns)
	}
	return level, nil
}

func levelName(spec *LevelSpec) string {
	if spec == nil {
		return ""
	}
	return spec.Name
}
