package source

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"charging_occupancy/internal/models"
)

// scanBufSize bounds a single dump line; snapshot payloads stay well under it.
const scanBufSize = 1 << 20

// JSONLSource reads raw events from a directory tree of *.jsonl dump files,
// one JSON event per line. Only the first sampleFiles files (sorted by path)
// are read when sampleFiles is positive.
type JSONLSource struct {
	dir         string
	sampleFiles int
}

func NewJSONLSource(dir string, sampleFiles int) *JSONLSource {
	return &JSONLSource{dir: dir, sampleFiles: sampleFiles}
}

// findDumpFiles walks the dump root and returns all *.jsonl paths, sorted.
func findDumpFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".jsonl") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk dump dir %q: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Load decodes the sampled dump files. Lines that fail to decode are counted
// and skipped; an unreadable file counts as one decode failure rather than
// aborting the batch.
func (s *JSONLSource) Load(ctx context.Context) ([]models.RawEvent, int, error) {
	paths, err := findDumpFiles(s.dir)
	if err != nil {
		return nil, 0, err
	}
	if s.sampleFiles > 0 && len(paths) > s.sampleFiles {
		paths = paths[:s.sampleFiles]
	}

	var events []models.RawEvent
	failures := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		evs, n, err := readDumpFile(path)
		if err != nil {
			failures++
			continue
		}
		events = append(events, evs...)
		failures += n
	}
	return events, failures, nil
}

func readDumpFile(path string) ([]models.RawEvent, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	var events []models.RawEvent
	failures := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), scanBufSize)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var ev models.RawEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			failures++
			continue
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	return events, failures, nil
}
