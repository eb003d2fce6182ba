package synthfastq

import (
	"path/filepath"

	"github.com/carbocation/rnaseqprep/samplesheet"
)

// SamplesheetName is written next to, not inside, the FASTQ directory.
const SamplesheetName = "samplesheet_real_test.csv"

func SamplesheetPath(opts Options) string {
	return filepath.Join(filepath.Dir(filepath.Clean(opts.OutputDir)), SamplesheetName)
}

// SamplesheetRows keeps the sample order of pairs, unlike
// samplesheet.FromSamples which sorts by name.
func SamplesheetRows(pairs []Pair) []samplesheet.Row {
	rows := make([]samplesheet.Row, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, samplesheet.Row{
			Sample:       p.Sample,
			Fastq1:       p.Mate1,
			Fastq2:       p.Mate2,
			Strandedness: samplesheet.Auto,
		})
	}

	return rows
}

// WriteSamplesheet writes the rows for pairs to SamplesheetPath and returns
// that path.
func WriteSamplesheet(opts Options, pairs []Pair) (string, error) {
	path := SamplesheetPath(opts)

	return path, samplesheet.WriteFile(path, SamplesheetRows(pairs))
}
