// Command gannet is the UCI chess engine binary. It speaks the UCI
// protocol on stdin/stdout; diagnostics go to stderr.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/op/go-logging"

	"github.com/sgrimes/gannet/internal/engine"
	"github.com/sgrimes/gannet/internal/uci"
)

var (
	hashSize   = flag.Int("hash", engine.DefaultHashSizeMB, "transposition table size in MiB")
	logLevel   = flag.String("log", "warning", "log level: debug, info, warning, error")
	cpuprofile = flag.String("cpuprofile", "", "write a CPU profile to this file")
)

func main() {
	os.Exit(run())
}

// run exists so deferred cleanup survives the explicit exit code.
func run() int {
	flag.Parse()

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q\n", *logLevel)
		return 2
	}
	uci.SetupLogging(level)

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cpuprofile: %v\n", err)
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "cpuprofile: %v\n", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	eng := engine.New(*hashSize)
	return uci.New(eng, os.Stdout).Run(os.Stdin)
}
