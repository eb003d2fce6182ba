// Package pairing partitions a set of FASTQ paths into named samples, each
// either a paired-end mate1/mate2 pair or a single unmatched file.
package pairing

import (
	"fmt"
	"sort"
)

// Sample is one row of the eventual samplesheet. Mate1 is always set; Mate2
// is set only when the sample was resolved as paired-end.
type Sample struct {
	Mate1 string
	Mate2 string
}

func (s Sample) Paired() bool {
	return s.Mate2 != ""
}

// Samples maps sample name to its files.
type Samples map[string]Sample

// Names returns the sample names in lexicographic order.
func (s Samples) Names() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Files returns every path held by s, sorted.
func (s Samples) Files() []string {
	out := make([]string, 0, 2*len(s))
	for _, sample := range s {
		out = append(out, sample.Mate1)
		if sample.Paired() {
			out = append(out, sample.Mate2)
		}
	}
	sort.Strings(out)

	return out
}

// Collision records a file that could not be bound under its natural sample
// name because another file already held that name.
type Collision struct {
	Name     string
	Assigned string
	Path     string
}

func (c Collision) String() string {
	return fmt.Sprintf("%s: sample name %q already in use, bound as %q", c.Path, c.Name, c.Assigned)
}

// Resolve partitions files into samples. Conventions are tried in order; a
// file claimed by an earlier convention is never reconsidered. Files are
// visited in lexicographic order so the result does not depend on input
// order. Whatever is left after the last convention is single-end.
//
// Every distinct input path ends up in exactly one slot of exactly one
// sample. When a name is already taken, a pairing is skipped (its files stay
// available to later conventions) and a single-end file gets a numeric
// suffix; each such case is reported as a Collision.
func Resolve(files []string, conventions []Convention) (Samples, []Collision) {
	remaining := uniqueSorted(files)
	samples := make(Samples, len(remaining))

	// Natural names that were denied to a file; consulted when the file is
	// finally bound.
	denied := make(map[string]string)
	var collisions []Collision

	bind := func(name, file string) {
		if natural, ok := denied[file]; ok {
			collisions = append(collisions, Collision{Name: natural, Assigned: name, Path: file})
			delete(denied, file)
		}
	}

	for _, conv := range conventions {
		mate2 := make(map[string][]string)
		for _, file := range remaining {
			if stem, ok := conv.Mate2Stem(Basename(file)); ok {
				mate2[stem] = append(mate2[stem], file)
			}
		}

		claimed := make(map[string]bool)
		for _, file1 := range remaining {
			if claimed[file1] {
				continue
			}

			stem, ok := conv.Mate1Stem(Basename(file1))
			if !ok {
				continue
			}

			file2 := firstUnclaimed(mate2[stem], claimed, file1)
			if file2 == "" {
				continue
			}

			if _, taken := samples[stem]; taken {
				for _, f := range []string{file1, file2} {
					if _, seen := denied[f]; !seen {
						denied[f] = stem
					}
				}
				continue
			}

			bind(stem, file1)
			bind(stem, file2)
			samples[stem] = Sample{Mate1: file1, Mate2: file2}
			claimed[file1] = true
			claimed[file2] = true
		}

		remaining = withoutClaimed(remaining, claimed)
	}

	for _, file := range remaining {
		natural := SingleEndName(Basename(file))

		name := natural
		for i := 2; ; i++ {
			if _, taken := samples[name]; !taken {
				break
			}
			name = fmt.Sprintf("%s_%d", natural, i)
		}

		if name != natural {
			if _, seen := denied[file]; !seen {
				denied[file] = natural
			}
		}

		bind(name, file)
		samples[name] = Sample{Mate1: file}
	}

	sort.Slice(collisions, func(i, j int) bool {
		return collisions[i].Path < collisions[j].Path
	})

	return samples, collisions
}

func firstUnclaimed(candidates []string, claimed map[string]bool, exclude string) string {
	for _, c := range candidates {
		if c != exclude && !claimed[c] {
			return c
		}
	}

	return ""
}

func withoutClaimed(files []string, claimed map[string]bool) []string {
	if len(claimed) == 0 {
		return files
	}

	out := make([]string, 0, len(files)-len(claimed))
	for _, f := range files {
		if !claimed[f] {
			out = append(out, f)
		}
	}

	return out
}

func uniqueSorted(files []string) []string {
	seen := make(map[string]struct{}, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Strings(out)

	return out
}
