package synthfastq

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/carbocation/rnaseqprep/pairing"
	gzip "github.com/klauspost/pgzip"
)

func testOptions(t *testing.T) Options {
	t.Helper()

	opts := DefaultOptions()
	opts.OutputDir = filepath.Join(t.TempDir(), "test_data", "fastq")
	opts.NumReads = 25
	opts.ReadLength = 12
	opts.Samples = []string{"S2", "S1"}
	opts.Seed = 42
	opts.Concurrency = 2

	return opts
}

func readGzipLines(t *testing.T, path string) []string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()

	var lines []string
	s := bufio.NewScanner(zr)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		t.Fatal(err)
	}

	return lines
}

func TestGenerateRecords(t *testing.T) {
	opts := testOptions(t)

	pairs, err := Generate(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Pair{
		{"S2", filepath.Join(opts.OutputDir, "S2_1.fastq.gz"), filepath.Join(opts.OutputDir, "S2_2.fastq.gz")},
		{"S1", filepath.Join(opts.OutputDir, "S1_1.fastq.gz"), filepath.Join(opts.OutputDir, "S1_2.fastq.gz")},
	}
	if !reflect.DeepEqual(pairs, expected) {
		t.Fatalf("\nGot:      %v\nExpected: %v", pairs, expected)
	}

	for _, p := range pairs {
		for mate, path := range []string{p.Mate1, p.Mate2} {
			mate++

			lines := readGzipLines(t, path)
			if len(lines) != 4*opts.NumReads {
				t.Fatalf("%s: %d lines, expected %d", path, len(lines), 4*opts.NumReads)
			}

			for i := 0; i < opts.NumReads; i++ {
				n := i + 1
				header, seq, sep, qual := lines[4*i], lines[4*i+1], lines[4*i+2], lines[4*i+3]

				if want := fmt.Sprintf("@%s.%d %d/%d", p.Sample, n, n, mate); header != want {
					t.Fatalf("%s: header %q, expected %q", path, header, want)
				}
				if sep != "+" {
					t.Fatalf("%s: separator %q", path, sep)
				}
				if len(seq) != opts.ReadLength || len(qual) != opts.ReadLength {
					t.Fatalf("%s: read %d has lengths %d/%d", path, n, len(seq), len(qual))
				}
				if strings.Trim(seq, bases) != "" {
					t.Fatalf("%s: unexpected base in %q", path, seq)
				}
				if strings.Trim(qual, qualities) != "" {
					t.Fatalf("%s: unexpected quality in %q", path, qual)
				}
			}
		}
	}
}

func TestGenerateReproducible(t *testing.T) {
	a := testOptions(t)
	b := testOptions(t)
	b.Concurrency = 1

	pairsA, err := Generate(context.Background(), a)
	if err != nil {
		t.Fatal(err)
	}
	pairsB, err := Generate(context.Background(), b)
	if err != nil {
		t.Fatal(err)
	}

	for i := range pairsA {
		for _, paths := range [][2]string{{pairsA[i].Mate1, pairsB[i].Mate1}, {pairsA[i].Mate2, pairsB[i].Mate2}} {
			if !reflect.DeepEqual(readGzipLines(t, paths[0]), readGzipLines(t, paths[1])) {
				t.Fatalf("%s and %s differ", paths[0], paths[1])
			}
		}
	}

	// The mates of one sample are drawn independently.
	if readGzipLines(t, pairsA[0].Mate1)[1] == readGzipLines(t, pairsA[0].Mate2)[1] {
		t.Fatal("Mate 1 and mate 2 share a sequence")
	}
}

func TestGeneratedFilesPair(t *testing.T) {
	opts := testOptions(t)

	pairs, err := Generate(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	var files []string
	for _, p := range pairs {
		files = append(files, p.Mate2, p.Mate1)
	}

	samples, collisions := pairing.Resolve(files, pairing.DefaultConventions())
	if len(collisions) != 0 {
		t.Fatalf("Unexpected collisions: %v", collisions)
	}

	for _, p := range pairs {
		got, ok := samples[p.Sample]
		if !ok {
			t.Fatalf("%s not resolved, got %v", p.Sample, samples.Names())
		}
		if got.Mate1 != p.Mate1 || got.Mate2 != p.Mate2 {
			t.Fatalf("%s: got %+v, expected %+v", p.Sample, got, p)
		}
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := testOptions(t)
	if _, err := Generate(ctx, opts); err == nil {
		t.Fatal("Expected an error for a cancelled context")
	}

	// No partial output is left behind.
	leftover, err := filepath.Glob(filepath.Join(opts.OutputDir, "*.fastq.gz"))
	if err != nil {
		t.Fatal(err)
	}
	if len(leftover) != 0 {
		t.Fatalf("Partial files left behind: %v", leftover)
	}
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Options){
		"no output dir":   func(o *Options) { o.OutputDir = "" },
		"zero reads":      func(o *Options) { o.NumReads = 0 },
		"negative length": func(o *Options) { o.ReadLength = -1 },
		"no samples":      func(o *Options) { o.Samples = nil },
		"empty sample":    func(o *Options) { o.Samples = []string{"A", ""} },
		"duplicate":       func(o *Options) { o.Samples = []string{"A", "B", "A"} },
		"separator":       func(o *Options) { o.Samples = []string{"a/b"} },
	} {
		opts := DefaultOptions()
		mutate(&opts)
		if err := opts.Validate(); err == nil {
			t.Errorf("%s: expected an error", name)
		}
		if _, err := Generate(context.Background(), opts); err == nil {
			t.Errorf("%s: expected Generate to fail", name)
		}
	}

	if err := DefaultOptions().Validate(); err != nil {
		t.Fatalf("Defaults should validate: %v", err)
	}
}

func TestParseSampleList(t *testing.T) {
	for input, expected := range map[string][]string{
		"A,B,C":      {"A", "B", "C"},
		"A B  C":     {"A", "B", "C"},
		" A, B ,C, ": {"A", "B", "C"},
		"SRR6357070": {"SRR6357070"},
		"":           nil,
		" , ":        nil,
	} {
		got := ParseSampleList(input)
		if len(got) == 0 && len(expected) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("%q: got %q, expected %q", input, got, expected)
		}
	}
}

func TestWriteSamplesheet(t *testing.T) {
	opts := testOptions(t)

	pairs, err := Generate(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	path, err := WriteSamplesheet(opts, pairs)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(filepath.Dir(opts.OutputDir), SamplesheetName); path != want {
		t.Fatalf("Samplesheet at %s, expected %s", path, want)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var expected bytes.Buffer
	io.WriteString(&expected, "sample,fastq_1,fastq_2,strandedness\n")
	for _, s := range []string{"S2", "S1"} {
		fmt.Fprintf(&expected, "%s,%s,%s,auto\n", s,
			filepath.Join(opts.OutputDir, s+"_1.fastq.gz"),
			filepath.Join(opts.OutputDir, s+"_2.fastq.gz"))
	}
	if string(got) != expected.String() {
		t.Fatalf("\nGot:\n%s\nExpected:\n%s", got, expected.String())
	}
}

func TestReport(t *testing.T) {
	dir := t.TempDir()
	for name, size := range map[string]int{
		"b_1.fastq.gz": 2048,
		"a_1.fastq.gz": 1024,
		"a_1.fq.gz":    4096,
		"notes.txt":    10,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), make([]byte, size), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	r, err := Report(dir)
	if err != nil {
		t.Fatal(err)
	}

	expected := DirReport{
		Files:   []FileSize{{"a_1.fastq.gz", 1}, {"b_1.fastq.gz", 2}},
		TotalKB: 3,
		MeanKB:  1.5,
	}
	if !reflect.DeepEqual(r, expected) {
		t.Fatalf("\nGot:      %+v\nExpected: %+v", r, expected)
	}
	if s := r.Files[0].String(); s != "a_1.fastq.gz: 1.0 KB" {
		t.Fatalf("Got %q", s)
	}

	empty, err := Report(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(empty.Files) != 0 || empty.TotalKB != 0 {
		t.Fatalf("Got %+v for an empty directory", empty)
	}
}
