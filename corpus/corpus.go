// Package corpus loads the line-oriented test-position files used to
// validate the solver, and persists transposition-table snapshots to
// disk between runs.
package corpus

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aandres44/c04s/tt"
)

// Record is one line of a test-position file: a move sequence and, if
// the file supplies one, the expected game-theoretic score.
type Record struct {
	Moves         string
	ExpectedScore int
	HasScore      bool
}

// LoadPositions reads a test-position file: one record per line, each a
// move-sequence digit string optionally followed by whitespace and an
// expected integer score. Blank lines are skipped.
func LoadPositions(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return parsePositions(file)
}

func parsePositions(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		rec := Record{Moves: fields[0]}
		if len(fields) > 1 {
			score, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("corpus: line %d: invalid expected score %q: %w", lineNo, fields[1], err)
			}
			rec.ExpectedScore = score
			rec.HasScore = true
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveTTSnapshot writes table's current contents to path as gob, creating
// any missing parent directories along the way.
func SaveTTSnapshot(path string, table *tt.Table) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("corpus: create snapshot dir %s: %w", dir, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("corpus: create snapshot %s: %w", path, err)
	}
	defer file.Close()
	if err := gob.NewEncoder(file).Encode(table.Dump()); err != nil {
		return fmt.Errorf("corpus: encode snapshot %s: %w", path, err)
	}
	return nil
}

// LoadTTSnapshot reads a gob snapshot from path into table. A missing
// file is not an error: it reports false,nil and leaves table as it was,
// matching the teacher's "cold start" persistence behavior. It also
// reports false,nil when the snapshot's size doesn't match table's and
// so was skipped.
func LoadTTSnapshot(path string, table *tt.Table) (loaded bool, err error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("corpus: open snapshot %s: %w", path, err)
	}
	defer file.Close()
	var snap tt.Snapshot
	if err := gob.NewDecoder(file).Decode(&snap); err != nil {
		return false, fmt.Errorf("corpus: decode snapshot %s: %w", path, err)
	}
	return table.Load(snap), nil
}
