package synthfastq

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
)

type FileSize struct {
	Name string
	KB   float64
}

func (f FileSize) String() string {
	return fmt.Sprintf("%s: %.1f KB", f.Name, f.KB)
}

// DirReport summarizes the gzip FASTQ files in a directory.
type DirReport struct {
	Files   []FileSize
	TotalKB float64
	MeanKB  float64
}

// Report lists every *.fastq.gz directly inside dir, sorted by name.
func Report(dir string) (DirReport, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.fastq.gz"))
	if err != nil {
		return DirReport{}, pfx.Err(err)
	}
	sort.Strings(matches)

	var out DirReport
	sizes := make(stats.Float64Data, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return DirReport{}, pfx.Err(err)
		}
		if info.IsDir() {
			continue
		}

		kb := float64(info.Size()) / 1024
		out.Files = append(out.Files, FileSize{Name: filepath.Base(m), KB: kb})
		sizes = append(sizes, kb)
	}

	if len(sizes) == 0 {
		return out, nil
	}

	if out.TotalKB, err = stats.Sum(sizes); err != nil {
		return DirReport{}, pfx.Err(err)
	}
	if out.MeanKB, err = stats.Mean(sizes); err != nil {
		return DirReport{}, pfx.Err(err)
	}

	return out, nil
}
