// gspan mines all frequent connected subgraphs of a labeled graph database.
//
// Usage:
//
//	gspan --input=graphs.txt --min_freq=2 [--output=patterns.txt]
//	gspan graphs.txt 2
package main

import (
	"bufio"
	"flag"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/janpfeifer/gspan/internal/graph"
	"github.com/janpfeifer/gspan/internal/mine"
	"github.com/janpfeifer/gspan/internal/preprocess"
)

var (
	flagInput       = flag.String("input", "", "Graph database file to mine.")
	flagMinFreq     = flag.Int("min_freq", 0, "Minimum number of graphs a pattern must occur in. Must be >= 1.")
	flagOutput      = flag.String("output", "", "File to write the frequent patterns to. Default is stdout.")
	flagParallelism = flag.Int("parallelism", 1, "Number of root patterns mined simultaneously. "+
		"If > 1 the output order becomes non-deterministic. 0 means GOMAXPROCS.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// The two positional arguments of the original tool are also accepted.
	input, minFreq := *flagInput, *flagMinFreq
	if flag.NArg() == 2 && input == "" {
		input = flag.Arg(0)
		v, err := strconv.Atoi(flag.Arg(1))
		if err != nil {
			klog.Exitf("Invalid min frequency %q: %v", flag.Arg(1), err)
		}
		minFreq = v
	} else if flag.NArg() != 0 {
		klog.Exitf("Unexpected arguments %q: use --input/--min_freq or exactly two positional arguments", flag.Args())
	}
	if input == "" {
		klog.Exitf("No input file: set --input (or pass it as the first positional argument)")
	}
	if minFreq < 1 {
		klog.Exitf("Invalid --min_freq=%d, must be >= 1", minFreq)
	}
	parallelism := *flagParallelism
	if parallelism == 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	in := must.M1(os.Open(input))
	parsed, err := graph.ReadGraphs(in)
	if err != nil {
		klog.Exitf("Failed to parse %s: %v", input, err)
	}
	must.M(in.Close())
	klog.V(1).Infof("Parsed %d graphs in %s", len(parsed), time.Since(start))

	graphs := preprocess.Preprocess(parsed, minFreq)

	out := os.Stdout
	if *flagOutput != "" {
		out = must.M1(os.Create(*flagOutput))
	}
	buf := bufio.NewWriter(out)
	writer := mine.NewPatternWriter(buf)
	if _, err := mine.Mine(graphs, minFreq, writer, parallelism); err != nil {
		klog.Exitf("Mining failed: %+v", err)
	}
	if err := buf.Flush(); err != nil {
		klog.Exitf("Failed to write output: %v", err)
	}
	if *flagOutput != "" {
		must.M(out.Close())
	}
	klog.V(1).Infof("Done: %d patterns in %s", writer.Patterns(), time.Since(start))
}
