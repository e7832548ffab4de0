// Command gannet-bench runs an EPD test suite through the engine and
// reports how many positions it solves. With -history it also records
// the run in a BadgerDB database and prints the delta against the
// previous run of the same suite.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sgrimes/gannet/internal/engine"
	"github.com/sgrimes/gannet/internal/epd"
	"github.com/sgrimes/gannet/internal/storage"
	"github.com/sgrimes/gannet/internal/uci"
)

var (
	suitePath = flag.String("suite", "", "path to the EPD suite (required)")
	moveTime  = flag.Int("movetime", 1000, "milliseconds per position")
	depth     = flag.Int("depth", 0, "fixed depth per position (overrides movetime)")
	hashSize  = flag.Int("hash", engine.DefaultHashSizeMB, "transposition table size in MiB")
	history   = flag.String("history", "", "directory of the run-history database (optional)")
	verbose   = flag.Bool("v", false, "print every unsolved position")
)

var log = logging.MustGetLogger("gannet.bench")

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()
	uci.SetupLogging(logging.WARNING)

	if *suitePath == "" {
		fmt.Fprintln(os.Stderr, "usage: gannet-bench -suite <file.epd> [-movetime ms | -depth n]")
		return 2
	}

	f, err := os.Open(*suitePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open suite: %v\n", err)
		return 1
	}
	records, parseErrs := epd.Parse(f)
	f.Close()
	for _, perr := range parseErrs {
		log.Warningf("suite: %v", perr)
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "suite contains no usable positions")
		return 1
	}

	limits := engine.Limits{MoveTime: time.Duration(*moveTime) * time.Millisecond}
	if *depth > 0 {
		limits = engine.Limits{Depth: *depth}
	}

	suite := filepath.Base(*suitePath)
	runRec := storage.RunRecord{
		Suite:     suite,
		Started:   time.Now(),
		MoveTime:  limits.MoveTime,
		Depth:     limits.Depth,
		Positions: len(records),
	}

	p := message.NewPrinter(language.English)
	start := time.Now()

	for i := range records {
		rec := &records[i]
		eng := engine.New(*hashSize) // fresh table: positions must not help each other
		move := eng.Search(rec.Position, limits)
		runRec.Nodes += eng.Nodes()

		if rec.Solved(move) {
			runRec.Solved++
		} else if *verbose {
			p.Printf("unsolved %-12s %s played %v\n", rec.ID, rec.FEN, move)
		}
	}
	runRec.Elapsed = time.Since(start)

	p.Printf("suite %s: solved %d/%d (%.1f%%), %d nodes in %v\n",
		suite, runRec.Solved, runRec.Positions, runRec.SolveRate(),
		runRec.Nodes, runRec.Elapsed.Round(time.Millisecond))

	if *history != "" {
		if err := recordRun(p, runRec); err != nil {
			fmt.Fprintf(os.Stderr, "history: %v\n", err)
			return 1
		}
	}
	return 0
}

// recordRun persists the run and reports the change since the previous
// run of the same suite.
func recordRun(p *message.Printer, runRec storage.RunRecord) error {
	store, err := storage.Open(*history)
	if err != nil {
		return err
	}
	defer store.Close()

	if prev, ok, err := store.LastRun(runRec.Suite); err != nil {
		return err
	} else if ok {
		p.Printf("previous run: %d/%d (%.1f%%), delta %+d\n",
			prev.Solved, prev.Positions, prev.SolveRate(), runRec.Solved-prev.Solved)
	}

	return store.SaveRun(runRec)
}
