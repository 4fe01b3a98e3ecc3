package gomoku

import "github.com/rocketscienceinc/gomoku-backend/internal/entity"

// axes are the four line directions; each is walked both ways.
var axes = [4]entity.Point{
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: 1, Y: 1},
	{X: 1, Y: -1},
}

// CheckWin reports whether the stones contain a gap-free run of at least
// WinLength through last, and returns that run ordered along its axis.
func CheckWin(stones map[entity.Point]struct{}, last entity.Point) (bool, []entity.Point) {
	for _, dir := range axes {
		back := walk(stones, last, entity.Point{X: -dir.X, Y: -dir.Y})
		forward := walk(stones, last, dir)

		if back+forward+1 < WinLength {
			continue
		}

		start := entity.Point{X: last.X - back*dir.X, Y: last.Y - back*dir.Y}
		line := make([]entity.Point, 0, back+forward+1)
		for i := 0; i <= back+forward; i++ {
			line = append(line, entity.Point{X: start.X + i*dir.X, Y: start.Y + i*dir.Y})
		}

		return true, line
	}

	return false, nil
}

// walk counts own stones after from along dir until the first gap.
func walk(stones map[entity.Point]struct{}, from, dir entity.Point) int {
	count := 0
	for p := from.Add(dir); ; p = p.Add(dir) {
		if _, ok := stones[p]; !ok {
			return count
		}
		count++
	}
}
