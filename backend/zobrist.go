package main

import (
	"math/rand/v2"
	"sync"
)

// ZobristTable holds one random key per cell and colour for a board size.
type ZobristTable struct {
	size  int
	black []uint64
	white []uint64
}

var zobristTables sync.Map

// GetZobrist returns the shared table for a board size. Keys come from a
// PCG stream seeded by the size, so hashes are stable across runs.
func GetZobrist(size int) *ZobristTable {
	if table, ok := zobristTables.Load(size); ok {
		return table.(*ZobristTable)
	}
	table, _ := zobristTables.LoadOrStore(size, newZobristTable(size))
	return table.(*ZobristTable)
}

func newZobristTable(size int) *ZobristTable {
	rng := rand.New(rand.NewPCG(0x52454e4a55, uint64(size)))
	cells := size * size
	table := &ZobristTable{
		size:  size,
		black: make([]uint64, cells),
		white: make([]uint64, cells),
	}
	for i := 0; i < cells; i++ {
		table.black[i] = rng.Uint64()
		table.white[i] = rng.Uint64()
	}
	return table
}

func (z *ZobristTable) stone(x, y int, cell Cell) uint64 {
	switch cell {
	case CellBlack:
		return z.black[x*z.size+y]
	case CellWhite:
		return z.white[x*z.size+y]
	default:
		return 0
	}
}
