package main

type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (m Move) IsValid(boardSize int) bool {
	return m.X >= 0 && m.Y >= 0 && m.X < boardSize && m.Y < boardSize
}

func (m Move) Equals(other Move) bool {
	return m.X == other.X && m.Y == other.Y
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// manhattan is the taxicab distance between two cells.
func manhattan(a, b Move) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}
