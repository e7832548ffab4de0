// Package uci implements the UCI protocol front-end: it translates the
// controller's text commands into engine calls and prints info and
// bestmove lines on stdout. Diagnostics go to stderr; nothing that is
// not protocol output is ever written to stdout.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"

	"github.com/sgrimes/gannet/internal/board"
	"github.com/sgrimes/gannet/internal/engine"
	"github.com/sgrimes/gannet/internal/util"
)

var log = logging.MustGetLogger("gannet.uci")

const (
	// Name and Author identify the engine to the controller.
	Name   = "Gannet"
	Author = "S. Grimes"
)

// UCI is the protocol handler. It owns the engine and the current
// position between commands.
type UCI struct {
	engine   *engine.Engine
	position *board.Position

	// hashes of every position of the current game, root included, so
	// the search detects repetitions spanning played moves.
	gameHashes []uint64

	out io.Writer

	searching  bool
	searchDone chan struct{}
}

// New creates a protocol handler around eng, writing protocol output
// to out (stdout in production).
func New(eng *engine.Engine, out io.Writer) *UCI {
	u := &UCI{
		engine: eng,
		out:    out,
	}
	u.resetPosition()
	return u
}

func (u *UCI) resetPosition() {
	u.position = board.NewPosition()
	u.gameHashes = []uint64{u.position.Hash}
}

// Run reads commands from in until "quit" or EOF. It returns the
// process exit code.
func (u *UCI) Run(in io.Reader) int {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !u.Execute(line) {
			return 0
		}
	}
	return 0
}

// Execute handles a single command line. It returns false when the
// engine should exit.
func (u *UCI) Execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "uci":
		u.printf("id name %s\n", Name)
		u.printf("id author %s\n", Author)
		u.printf("option name Hash type spin default %d min 1 max 4096\n", engine.DefaultHashSizeMB)
		u.printf("uciok\n")
	case "isready":
		u.printf("readyok\n")
	case "ucinewgame":
		u.waitSearch()
		u.engine.NewGame()
		u.resetPosition()
	case "position":
		u.waitSearch()
		u.handlePosition(args)
	case "go":
		u.handleGo(args)
	case "stop":
		u.engine.Stop()
		u.waitSearch()
	case "quit":
		u.engine.Stop()
		u.waitSearch()
		return false
	case "d":
		u.printf("%s\n", u.position)
	case "perft":
		u.handlePerft(args)
	default:
		log.Warningf("unknown command %q", cmd)
	}
	return true
}

// waitSearch blocks until a running search has printed its bestmove.
func (u *UCI) waitSearch() {
	if u.searching {
		<-u.searchDone
		u.searching = false
	}
}

func (u *UCI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

// handlePosition implements "position [startpos | fen <fen>] [moves ...]".
// A malformed FEN leaves the start position; an illegal or unparsable
// move stops the move list, keeping everything applied so far.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	moveIdx := len(args)
	for i, a := range args {
		if a == "moves" {
			moveIdx = i
			break
		}
	}

	switch args[0] {
	case "startpos":
		u.resetPosition()
	case "fen":
		pos, err := board.ParseFEN(strings.Join(args[1:moveIdx], " "))
		if err != nil {
			log.Errorf("position: %v, keeping start position", err)
			u.resetPosition()
			return
		}
		u.position = pos
		u.gameHashes = []uint64{pos.Hash}
	default:
		log.Errorf("position: unknown form %q", args[0])
		return
	}

	for _, ms := range args[util.Min(moveIdx+1, len(args)):] {
		m, err := board.ParseMove(ms, u.position)
		if err != nil {
			log.Errorf("position: move %q: %v", ms, err)
			return
		}
		var legal board.MoveList
		u.position.GenerateLegalMoves(&legal)
		if !legal.Contains(m) {
			log.Errorf("position: illegal move %q ignored", ms)
			return
		}
		u.position.MakeMove(m)
		u.gameHashes = append(u.gameHashes, u.position.Hash)
	}
}

// handleGo parses limits and starts the search on its own goroutine so
// stop commands stay responsive.
func (u *UCI) handleGo(args []string) {
	u.waitSearch()

	limits := parseGoLimits(args)

	pos := u.position.Copy()
	pos.SeedHistory(u.gameHashes[:len(u.gameHashes)-1])

	u.engine.OnInfo = func(info engine.SearchInfo) {
		u.printf("info depth %d score cp %d nodes %d time %d pv %v\n",
			info.Depth, info.Score, info.Nodes, info.Elapsed.Milliseconds(), info.BestMove)
	}

	u.searching = true
	u.searchDone = make(chan struct{})
	go func() {
		defer close(u.searchDone)
		best := u.engine.Search(pos, limits)
		if best == board.NoMove {
			log.Warning("no legal moves: game is over")
		}
		u.printf("bestmove %v\n", best)
	}()
}

func parseGoLimits(args []string) engine.Limits {
	var limits engine.Limits
	ms := func(s string) time.Duration {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0
		}
		return time.Duration(n) * time.Millisecond
	}

	for i := 0; i < len(args); i++ {
		if i+1 >= len(args) {
			break
		}
		switch args[i] {
		case "depth":
			limits.Depth, _ = strconv.Atoi(args[i+1])
			i++
		case "movetime":
			limits.MoveTime = ms(args[i+1])
			i++
		case "wtime":
			limits.WTime = ms(args[i+1])
			i++
		case "btime":
			limits.BTime = ms(args[i+1])
			i++
		case "winc", "binc", "movestogo", "nodes", "mate":
			i++ // recognized but unused
		}
	}
	for _, a := range args {
		if a == "infinite" {
			limits.Infinite = true
		}
	}
	return limits
}

func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil && d > 0 {
			depth = d
		}
	}
	start := time.Now()
	nodes := u.position.Perft(depth)
	u.printf("perft %d: %d nodes in %v\n", depth, nodes, time.Since(start).Round(time.Millisecond))
}

// SetupLogging routes diagnostics to stderr at the given level. Called
// once from main.
func SetupLogging(level logging.Level) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend,
		logging.MustStringFormatter("%{module} %{level:.4s} %{message}"))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
}
