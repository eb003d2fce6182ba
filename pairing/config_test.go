package pairing

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseConventionsTSV(t *testing.T) {
	input := "name\tmate1\tmate2\n" +
		"# lane-split reads\n" +
		`lane` + "\t" + `^(.+)_L00\d_R1\.fastq\.gz$` + "\t" + `^(.+)_L00\d_R2\.fastq\.gz$` + "\n" +
		`plain` + "\t" + `^(.+)_1\.fq$` + "\t" + `^(.+)_2\.fq$` + "\n"

	conventions, err := ParseConventions(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if len(conventions) != 2 || conventions[0].Name != "lane" || conventions[1].Name != "plain" {
		t.Fatalf("Got %+v", conventions)
	}

	got, _ := Resolve([]string{"Z_L001_R1.fastq.gz", "Z_L001_R2.fastq.gz", "Y_1.fq", "Y_2.fq"}, conventions)
	want := Samples{
		"Z": {Mate1: "Z_L001_R1.fastq.gz", Mate2: "Z_L001_R2.fastq.gz"},
		"Y": {Mate1: "Y_1.fq", Mate2: "Y_2.fq"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Got %+v, expected %+v", got, want)
	}
}

func TestParseConventionsCSV(t *testing.T) {
	input := "name,mate1,mate2\n" +
		"dash,^(.+)-1\\.fq$,^(.+)-2\\.fq$\n" +
		",^(.+)~a\\.fq$,^(.+)~b\\.fq$\n"

	conventions, err := ParseConventions(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if len(conventions) != 2 || conventions[0].Name != "dash" || conventions[1].Name != "rule2" {
		t.Fatalf("Got %+v", conventions)
	}

	if stem, ok := conventions[0].Mate1Stem("S-1.fq"); !ok || stem != "S" {
		t.Fatalf("Got stem %q, ok %v", stem, ok)
	}
}

func TestParseConventionsLeadingComment(t *testing.T) {
	for _, input := range []string{
		"# site rules\nname,mate1,mate2\nplain,^(.+)_1\\.fq$,^(.+)_2\\.fq$\n",
		"\n# site rules, tab separated\n\nname\tmate1\tmate2\nplain\t^(.+)_1\\.fq$\t^(.+)_2\\.fq$\n",
	} {
		conventions, err := ParseConventions(strings.NewReader(input))
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		if len(conventions) != 1 || conventions[0].Name != "plain" {
			t.Fatalf("%q: got %+v", input, conventions)
		}

		if stem, ok := conventions[0].Mate2Stem("Y_2.fq"); !ok || stem != "Y" {
			t.Fatalf("%q: got stem %q, ok %v", input, stem, ok)
		}
	}
}

func TestParseConventionsErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"name,mate1,mate2\n",
		"name,mate1,mate2\nbad,^(.+_1\\.fq$,^(.+)_2\\.fq$\n",
		"name,mate1,mate2\nnogroup,^.+_1\\.fq$,^(.+)_2\\.fq$\n",
		"name,mate1\nhalf,^(.+)_1\\.fq$\n",
		"name,mate1,mate2\nloose,^(.+)_1\\.fq,^(.+)_2\\.fq$\n",
	} {
		if _, err := ParseConventions(strings.NewReader(input)); err == nil {
			t.Errorf("Expected an error for input %q", input)
		}
	}
}

func TestDefaultConventionsAreFresh(t *testing.T) {
	a := DefaultConventions()
	a[0] = Convention{Name: "changed"}

	if b := DefaultConventions(); b[0].Name != "R1_R2" || len(b) != 4 {
		t.Fatalf("Got %+v", b)
	}
}

func TestSingleEndName(t *testing.T) {
	for basename, expected := range map[string]string{
		"S.fastq.gz":   "S",
		"S.fq.gz":      "S",
		"S.fastq":      "S",
		"S.fq":         "S",
		"S_R1.fastq":   "S_R1",
		"S.FASTQ.GZ":   "S.FASTQ.GZ",
		"S.fastq.gz.1": "S.fastq.gz.1",
	} {
		if got := SingleEndName(basename); got != expected {
			t.Errorf("%s: got %q, expected %q", basename, got, expected)
		}
	}
}
