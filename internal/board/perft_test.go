package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Known-good perft counts, from the chessprogramming wiki.
var perftCases = []struct {
	name  string
	fen   string
	depth int
	nodes uint64
}{
	{"startpos d1", StartFEN, 1, 20},
	{"startpos d2", StartFEN, 2, 400},
	{"startpos d3", StartFEN, 3, 8902},
	{"startpos d4", StartFEN, 4, 197281},
	{"kiwipete d1", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 1, 48},
	{"kiwipete d2", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2, 2039},
	{"kiwipete d3", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3, 97862},
	{"endgame d3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3, 2812},
	{"endgame d4", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 4, 43238},
	{"promotions d3", "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1", 3, 9467},
}

func TestPerft(t *testing.T) {
	for _, tc := range perftCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			require.NoError(t, err)
			assert.Equal(t, tc.nodes, pos.Perft(tc.depth))
		})
	}
}

func TestPerftRestoresPosition(t *testing.T) {
	pos := NewPosition()
	before := pos.Hash
	pos.Perft(3)
	assert.Equal(t, before, pos.Hash, "perft must leave the position untouched")
	assert.Equal(t, StartFEN, pos.FEN())
}
