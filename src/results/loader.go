package results

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mooso/pheromessage/src/logging"
)

// MaxLineBytes caps a single JSONL line.
const MaxLineBytes = 16 * 1024 * 1024

// Load reads every record from the JSONL results file at path.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open results %s: %w", path, err)
	}
	defer f.Close()
	logging.Debugf("[results] reading %s", path)
	recs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logging.Infof("[results] loaded %d records from %s", len(recs), path)
	return recs, nil
}

// Decode reads newline-delimited JSON records from r. Blank lines are skipped;
// any other line that is not a record with a node count fails the whole read.
func Decode(r io.Reader) ([]Record, error) {
	reader := bufio.NewReader(r)
	records := []Record{}
	lineNo := 0
	for {
		line, err := readLine(reader)
		if len(line) == 0 && errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read line %d: %w", lineNo+1, err)
		}
		lineNo++
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) > 0 {
			var rec Record
			if uerr := json.Unmarshal(trimmed, &rec); uerr != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, uerr)
			}
			if rec.Nodes == nil {
				return nil, fmt.Errorf("line %d: missing \"nodes\"", lineNo)
			}
			records = append(records, rec)
		}
		if errors.Is(err, io.EOF) {
			return records, nil
		}
	}
}

// readLine returns one line including its newline. The final unterminated
// line, if any, comes back together with io.EOF. Lines are gathered in
// buffer-sized slices so an oversized line fails once it passes
// MaxLineBytes instead of being read whole.
func readLine(reader *bufio.Reader) ([]byte, error) {
	var line []byte
	for {
		part, err := reader.ReadSlice('\n')
		if len(line)+len(part) > MaxLineBytes {
			return nil, fmt.Errorf("line too large: exceeds limit of %d bytes", MaxLineBytes)
		}
		line = append(line, part...)
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return line, err
	}
}
