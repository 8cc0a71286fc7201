package metrics

// Level is a named tier derived from cumulative points.
type Level string

const (
	LevelBronze   Level = "Bronze"
	LevelSilver   Level = "Silver"
	LevelGold     Level = "Gold"
	LevelPlatinum Level = "Platinum"
	LevelDiamond  Level = "Diamond"
)

var levelBands = []struct {
	level Level
	min   int
}{
	{LevelBronze, 0},
	{LevelSilver, 501},
	{LevelGold, 1501},
	{LevelPlatinum, 3001},
	{LevelDiamond, 5000},
}

// LevelFor returns the level for the points and the distance to the next band.
// The distance is 0 at the top band.
func LevelFor(points int) (Level, int) {
	for i := len(levelBands) - 1; i >= 0; i-- {
		band := levelBands[i]
		if points < band.min {
			continue
		}
		if i == len(levelBands)-1 {
			return band.level, 0
		}
		return band.level, levelBands[i+1].min - points
	}
	return LevelBronze, levelBands[1].min - points
}
