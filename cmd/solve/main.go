// Command solve is the benchmark driver: it reads move sequences one
// per line (from a file or stdin), solves each to a game-theoretic
// score, and prints a result tuple per line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aandres44/c04s/position"
	"github.com/aandres44/c04s/solver"
)

func main() {
	ttMB := flag.Int("tt-mb", 64, "transposition table size in megabytes")
	weak := flag.Bool("weak", false, "report win/draw/loss only, not exact score")
	path := flag.String("file", "", "file of move sequences (default stdin)")
	flag.Parse()

	var in io.Reader = os.Stdin
	if *path != "" {
		file, err := os.Open(*path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "solve: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		in = file
	}

	s := solver.New(*ttMB, *weak)
	s.EnableStats()

	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Println()
			continue
		}
		fields := strings.Fields(line)
		moves := fields[0]

		pos := position.New()
		consumed := pos.PlaySequence(moves)
		if consumed != len(moves) {
			fmt.Fprintf(os.Stderr, "solve: line %d: invalid move at digit %d of %q\n", lineNo, consumed, moves)
			fmt.Println()
			continue
		}

		start := time.Now()
		score := s.Solve(&pos)
		elapsed := time.Since(start)
		nodes := int64(0)
		if stats := s.Stats(); stats != nil {
			nodes = stats.Nodes
		}

		if len(fields) > 1 {
			if expected, err := strconv.Atoi(fields[1]); err == nil && expected != score {
				fmt.Fprintf(os.Stderr, "solve: line %d: expected score %d, got %d for %q\n", lineNo, expected, score, moves)
			}
		}

		fmt.Printf("%s %d %d %d\n", moves, score, nodes, elapsed.Microseconds())
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "solve: %v\n", err)
		os.Exit(1)
	}
}
