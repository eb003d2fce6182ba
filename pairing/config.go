package pairing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/carbocation/pfx"
	"github.com/carbocation/rnaseqprep"
	"github.com/gocarina/gocsv"
)

// conventionRecord is one row of a conventions file.
type conventionRecord struct {
	Name  string `csv:"name"`
	Mate1 string `csv:"mate1"`
	Mate2 string `csv:"mate2"`
}

// ParseConventions reads an ordered list of conventions from a delimited file
// with the header name,mate1,mate2. The delimiter (comma or tab, typically)
// is guessed from the header, the first line that is not blank or a #
// comment. Lines starting with # are ignored. Row order is priority order.
func ParseConventions(r io.Reader) ([]Convention, error) {
	fileBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if len(bytes.TrimSpace(fileBytes)) == 0 {
		return nil, fmt.Errorf("conventions: empty file")
	}

	cr := csv.NewReader(bytes.NewReader(fileBytes))
	cr.Comma = rnaseqprep.HeaderDelimiter(rnaseqprep.FirstDataLine(fileBytes))
	cr.Comment = '#'
	cr.LazyQuotes = true

	records := []*conventionRecord{}
	if err := gocsv.UnmarshalCSV(cr, &records); err != nil {
		return nil, pfx.Err(err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("conventions: no rules after the header")
	}

	out := make([]Convention, 0, len(records))
	for i, rec := range records {
		name := rec.Name
		if name == "" {
			name = fmt.Sprintf("rule%d", i+1)
		}

		c, err := NewConvention(name, rec.Mate1, rec.Mate2)
		if err != nil {
			return nil, fmt.Errorf("conventions row %d: %w", i+1, err)
		}
		out = append(out, c)
	}

	return out, nil
}

// LoadConventions reads conventions from a local file.
func LoadConventions(path string) ([]Convention, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	return ParseConventions(f)
}
