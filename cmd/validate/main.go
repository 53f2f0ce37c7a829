// validate compares the outputs of two mining runs for set-equality of their
// patterns, ignoring pattern ids.
//
// Usage:
//
//	validate <path1> <path2>
//
// File paths are read directly; directories read all regular files
// immediately within them.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/must"
	"golang.org/x/term"
	"k8s.io/klog/v2"

	"github.com/janpfeifer/gspan/internal/generics"
	"github.com/janpfeifer/gspan/internal/graph"
)

var (
	styleSame = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleDiff = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <path1> <path2>\n", os.Args[0])
		os.Exit(2)
	}

	set1 := readPatternSet(flag.Arg(0))
	set2 := readPatternSet(flag.Arg(1))

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	if set1.Equal(set2) {
		fmt.Println(render(styleSame, "Results are the same", styled))
		return
	}
	fmt.Println(render(styleDiff, "Results differ", styled))
	fmt.Printf("\t%s: %d patterns\n\t%s: %d patterns\n", flag.Arg(0), len(set1), flag.Arg(1), len(set2))
	os.Exit(1)
}

func render(style lipgloss.Style, msg string, styled bool) string {
	if !styled {
		return msg
	}
	return style.Render(msg)
}

// readPatternSet reads the canonical pattern keys of one output file, or of
// every regular file directly inside a directory.
func readPatternSet(path string) generics.Set[string] {
	set := generics.MakeSet[string]()
	info, err := os.Stat(path)
	if err != nil {
		klog.Exitf("Cannot read %s: %v", path, err)
	}
	if !info.IsDir() {
		readPatternsInto(set, path)
		return set
	}
	for _, entry := range must.M1(os.ReadDir(path)) {
		if entry.IsDir() {
			continue
		}
		readPatternsInto(set, filepath.Join(path, entry.Name()))
	}
	return set
}

func readPatternsInto(set generics.Set[string], path string) {
	f := must.M1(os.Open(path))
	defer f.Close()
	patterns, err := graph.ReadPatterns(f)
	if err != nil {
		klog.Exitf("Failed to parse %s: %v", path, err)
	}
	for _, key := range generics.SliceMap(patterns, func(p graph.Pattern) string { return p.Key() }) {
		set.Insert(key)
	}
}
