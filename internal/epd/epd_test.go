package epd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgrimes/gannet/internal/board"
)

func TestParseLineBasic(t *testing.T) {
	rec, err := ParseLine(`6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - bm Ra8; id "mate.001";`)
	require.NoError(t, err)

	assert.Equal(t, "mate.001", rec.ID)
	require.Len(t, rec.BestMoves, 1)
	assert.Equal(t, "a1a8", rec.BestMoves[0].String())
	assert.True(t, rec.Solved(rec.BestMoves[0]))
	assert.False(t, rec.Solved(board.NewMove(board.G1, board.F1)))
}

func TestParseLineCoordinateNotation(t *testing.T) {
	rec, err := ParseLine(`6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - bm a1a8;`)
	require.NoError(t, err)
	require.Len(t, rec.BestMoves, 1)
	assert.Equal(t, "a1a8", rec.BestMoves[0].String())
}

func TestParseLinePawnCapture(t *testing.T) {
	rec, err := ParseLine(`4k3/8/8/3p4/4P3/8/8/4K3 w - - bm exd5;`)
	require.NoError(t, err)
	require.Len(t, rec.BestMoves, 1)
	assert.Equal(t, "e4d5", rec.BestMoves[0].String())
}

func TestParseLineCastling(t *testing.T) {
	rec, err := ParseLine(`r3k2r/8/8/8/8/8/8/R3K2R w KQkq - bm O-O-O;`)
	require.NoError(t, err)
	require.Len(t, rec.BestMoves, 1)
	assert.Equal(t, "e1c1", rec.BestMoves[0].String())
}

func TestParseLinePromotion(t *testing.T) {
	rec, err := ParseLine(`8/P6k/8/8/8/8/8/K7 w - - bm a8=Q;`)
	require.NoError(t, err)
	require.Len(t, rec.BestMoves, 1)
	assert.Equal(t, "a7a8q", rec.BestMoves[0].String())
}

func TestParseLineDisambiguation(t *testing.T) {
	// Both rooks reach b1; the file prefix picks one.
	rec, err := ParseLine(`4k3/8/8/8/8/8/8/R1R1K3 w - - bm Rab1;`)
	require.NoError(t, err)
	require.Len(t, rec.BestMoves, 1)
	assert.Equal(t, "a1b1", rec.BestMoves[0].String())
}

func TestParseLineAvoidMove(t *testing.T) {
	rec, err := ParseLine(`4k3/8/8/3p4/4P3/8/8/4K3 w - - am exd5; id "avoid";`)
	require.NoError(t, err)
	require.Len(t, rec.AvoidMoves, 1)
	assert.False(t, rec.Solved(rec.AvoidMoves[0]))
	assert.True(t, rec.Solved(board.NewMove(board.E4, board.E5)))
}

func TestParseSkipsBadLines(t *testing.T) {
	suite := strings.NewReader(`# comment
6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - bm Ra8; id "one";
garbage line that is not epd
4k3/8/8/3p4/4P3/8/8/4K3 w - - bm exd5; id "two";
`)
	records, errs := Parse(suite)
	assert.Len(t, records, 2)
	assert.Len(t, errs, 1)
}

func TestResolveSANAmbiguousFails(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/R1R1K3 w - - 0 1")
	require.NoError(t, err)
	_, err = resolveSAN(pos, "Rb1")
	assert.Error(t, err, "both rooks reach b1")
}
