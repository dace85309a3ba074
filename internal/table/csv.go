/*
 * Copyright 2025 The csvdiff Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package table

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadOptions controls how a delimited file is parsed.
type ReadOptions struct {
	// Delimiter is the field separator. Zero means sniff it from the first
	// line, falling back to a comma.
	Delimiter rune
	// Encoding names the character encoding ("", "utf-8", "latin1",
	// "windows-1252", "utf-16"). Empty means UTF-8 with BOM detection.
	Encoding string
}

// delimiter candidates tried by SniffDelimiter, most common first.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// SniffDelimiter guesses the field separator from the header line by picking
// the candidate that occurs most often outside quoted sections.
func SniffDelimiter(header string) rune {
	best := ','
	bestCount := 0
	for _, cand := range delimiterCandidates {
		count := 0
		inQuotes := false
		for _, r := range header {
			switch {
			case r == '"':
				inQuotes = !inQuotes
			case r == cand && !inQuotes:
				count++
			}
		}
		if count > bestCount {
			best = cand
			bestCount = count
		}
	}
	return best
}

// Read parses a delimited stream into a Table. The first record is the
// header; every data row must match its width.
func Read(r io.Reader, name string, opts ReadOptions) (*Table, error) {
	decoded, err := decodeReader(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	buffered := bufio.NewReader(decoded)
	delim := opts.Delimiter
	if delim == 0 {
		headerLine, peekErr := buffered.Peek(4096)
		if peekErr != nil && peekErr != io.EOF {
			return nil, fmt.Errorf("failed to read header from %s: %w", name, peekErr)
		}
		line, _, _ := strings.Cut(string(headerLine), "\n")
		delim = SniffDelimiter(line)
	}

	reader := csv.NewReader(buffered)
	reader.Comma = delim
	reader.FieldsPerRecord = 0 // enforce the header width

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file %s is empty: no header row", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", name, err)
	}

	t := New(name, header)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row from %s: %w", name, err)
		}
		t.Rows = append(t.Rows, record)
	}
	return t, nil
}

// ReadFile loads a delimited file; the table label is the base filename,
// matching what the diff report's source column should show.
func ReadFile(path string, opts ReadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, filepath.Base(path), opts)
}

// Write serializes a table as delimited text, header first.
func Write(w io.Writer, t *Table, delimiter rune) error {
	writer := csv.NewWriter(w)
	if delimiter != 0 {
		writer.Comma = delimiter
	}

	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("csv writer error: %w", err)
	}
	return nil
}

// WriteFile serializes a table to path, creating or truncating it.
func WriteFile(path string, t *Table, delimiter rune) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := Write(f, t, delimiter); err != nil {
		return err
	}
	return f.Close()
}
