package fastqscan

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/rnaseqprep"
)

// Header names, compared case-insensitively, that identify the path column
// of a manifest. Without one of them the first column is used.
var manifestPathColumns = []string{"path", "fastq", "file"}

// A first line holding any of these is read as a table row.
const tableDelimiters = ",\t;|"

// ReadManifest reads FASTQ paths from a local or gs:// manifest. See
// ParseManifest for the accepted layouts.
func ReadManifest(ctx context.Context, path string, filter Filter, client *storage.Client) ([]string, error) {
	rc, err := rnaseqprep.OpenLocalOrGoogleStorage(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return ParseManifest(rc, filter)
}

// ParseManifest accepts either a bare list with one path per line, or a
// delimited table. A table's first row is a header unless one of its cells
// is a FASTQ path. Blank and # lines are skipped, and the input may be
// compressed. Paths that fail the filter are dropped. The result is sorted
// and free of duplicates.
func ParseManifest(r io.Reader, filter Filter) ([]string, error) {
	dr, _, err := rnaseqprep.MaybeDecompress(r)
	if err != nil {
		return nil, err
	}
	defer dr.Close()

	fileBytes, err := io.ReadAll(dr)
	if err != nil {
		return nil, pfx.Err(err)
	}

	var candidates []string

	first := rnaseqprep.FirstDataLine(fileBytes)
	if first == "" || (HasFastqExtension(first) && !strings.ContainsAny(first, tableDelimiters)) {
		candidates, err = parseBareList(fileBytes)
	} else {
		candidates, err = parseTable(fileBytes, first)
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if !filter.Keep(c) {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)

	return out, nil
}

func parseBareList(fileBytes []byte) ([]string, error) {
	var out []string

	s := bufio.NewScanner(bytes.NewReader(fileBytes))
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := s.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

func parseTable(fileBytes []byte, first string) ([]string, error) {
	cr := csv.NewReader(bytes.NewReader(fileBytes))
	cr.Comma = rnaseqprep.HeaderDelimiter(first)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	entries, err := cr.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	// Headerless: the column holding the first FASTQ path is the path column.
	if column := fastqColumn(entries[0]); column >= 0 {
		return columnValues(entries, column), nil
	}

	column := 0
Outer:
	for _, want := range manifestPathColumns {
		for i, name := range entries[0] {
			if strings.EqualFold(strings.TrimSpace(name), want) {
				column = i
				break Outer
			}
		}
	}

	return columnValues(entries[1:], column), nil
}

func fastqColumn(row []string) int {
	for i, cell := range row {
		if HasFastqExtension(strings.TrimSpace(cell)) {
			return i
		}
	}

	return -1
}

func columnValues(rows [][]string, column int) []string {
	var out []string
	for _, row := range rows {
		if column >= len(row) {
			continue
		}
		out = append(out, strings.TrimSpace(row[column]))
	}

	return out
}
