package pairing

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// FastqExtension matches the recognized FASTQ suffixes (.fastq.gz, .fq.gz,
// .fastq, .fq) at the end of a basename. Matching is case-sensitive.
var FastqExtension = regexp.MustCompile(`\.f(?:ast)?q(?:\.gz)?$`)

// Convention is one paired-end file naming scheme. Each pattern is applied to
// a basename, and its first capture group is the stem shared by both mates.
type Convention struct {
	Name  string
	Mate1 *regexp.Regexp
	Mate2 *regexp.Regexp
}

// NewConvention compiles a convention from its two patterns.
func NewConvention(name, mate1, mate2 string) (Convention, error) {
	c := Convention{Name: name}

	var err error
	if c.Mate1, err = compileMatePattern(mate1); err != nil {
		return c, fmt.Errorf("convention %q mate1: %w", name, err)
	}
	if c.Mate2, err = compileMatePattern(mate2); err != nil {
		return c, fmt.Errorf("convention %q mate2: %w", name, err)
	}

	return c, nil
}

func compileMatePattern(pattern string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("empty pattern")
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(pattern, "$") || strings.HasSuffix(pattern, `\$`) {
		return nil, fmt.Errorf("pattern %q must be anchored at the end of the file name with $", pattern)
	}

	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("pattern %q has no capture group for the sample stem", pattern)
	}

	return re, nil
}

func mustConvention(name, mate1, mate2 string) Convention {
	c, err := NewConvention(name, mate1, mate2)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultConventions returns the built-in rules in priority order:
//  1. _R1/_R2, optionally followed by _001
//  2. _1/_2
//  3. .R1/.R2
//  4. .1/.2
//
// A fresh slice is returned on every call so callers may extend it.
func DefaultConventions() []Convention {
	const ext = `\.f(?:ast)?q(?:\.gz)?$`

	return []Convention{
		mustConvention("R1_R2", `^(.+)_R1(?:_001)?`+ext, `^(.+)_R2(?:_001)?`+ext),
		mustConvention("1_2", `^(.+)_1`+ext, `^(.+)_2`+ext),
		mustConvention("dotR1_dotR2", `^(.+)\.R1`+ext, `^(.+)\.R2`+ext),
		mustConvention("dot1_dot2", `^(.+)\.1`+ext, `^(.+)\.2`+ext),
	}
}

// Mate1Stem reports whether basename is a first mate under c, and its stem.
func (c Convention) Mate1Stem(basename string) (string, bool) {
	return stem(c.Mate1, basename)
}

// Mate2Stem reports whether basename is a second mate under c, and its stem.
func (c Convention) Mate2Stem(basename string) (string, bool) {
	return stem(c.Mate2, basename)
}

func stem(re *regexp.Regexp, basename string) (string, bool) {
	m := re.FindStringSubmatch(basename)
	if m == nil || m[1] == "" {
		return "", false
	}

	return m[1], true
}

// SingleEndName is the sample name of a file that did not pair: its basename
// with the FASTQ extension stripped. Mate designators are left in place, so
// a lone "D_R1.fastq.gz" becomes "D_R1".
func SingleEndName(basename string) string {
	return FastqExtension.ReplaceAllString(basename, "")
}

// Basename handles both local paths and gs:// object URLs.
func Basename(p string) string {
	if strings.Contains(p, "://") {
		return path.Base(p)
	}

	return filepath.Base(p)
}
