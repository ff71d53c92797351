
package ioformats

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadWords reads words from a CSV (expects header with "word") or NDJSON file.
// If ext cannot be determined, tries CSV first then NDJSON.
func ReadWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return ReadCSV(f)
	case ".ndjson", ".jsonl":
		return ReadNDJSON(f)
	default:
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		if words, err := ReadCSV(strings.NewReader(string(data))); err == nil && len(words) > 0 {
			return words, nil
		}
		return ReadNDJSON(strings.NewReader(string(data)))
	}
}

// ReadCSV returns the non-blank values of the "word" column.
func ReadCSV(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty csv")
	}
	col := -1
	for i, h := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(h), "word") {
			col = i
			break
		}
	}
	if col == -1 {
		return nil, errors.New("csv must contain a 'word' header column")
	}
	var out []string
	for _, row := range rows[1:] {
		if col < len(row) {
			w := strings.TrimSpace(row[col])
			if w != "" {
				out = append(out, w)
			}
		}
	}
	return out, nil
}

// ReadNDJSON accepts one word per line, either as a raw string, a JSON
// string or an object with a "word" field.
func ReadNDJSON(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		switch line[0] {
		case '{':
			var obj struct {
				Word string `json:"word"`
			}
			if err := json.Unmarshal([]byte(line), &obj); err != nil {
				return nil, fmt.Errorf("line %d: %w", n, err)
			}
			if w := strings.TrimSpace(obj.Word); w != "" {
				out = append(out, w)
			}
		case '"':
			var w string
			if err := json.Unmarshal([]byte(line), &w); err != nil {
				return nil, fmt.Errorf("line %d: %w", n, err)
			}
			if w = strings.TrimSpace(w); w != "" {
				out = append(out, w)
			}
		default:
			out = append(out, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.New("no words found in ndjson")
	}
	return out, nil
}

// WriteNDJSON writes items as NDJSON to w.
func WriteNDJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	return nil
}
