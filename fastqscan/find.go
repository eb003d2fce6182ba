// Package fastqscan collects candidate FASTQ paths from a local directory
// tree, a Google Storage prefix, or a manifest file.
package fastqscan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/rnaseqprep"
	"github.com/carbocation/rnaseqprep/pairing"
	"google.golang.org/api/iterator"
)

// Extensions are the recognized FASTQ suffixes. Matching is case-sensitive.
var Extensions = []string{".fastq.gz", ".fq.gz", ".fastq", ".fq"}

func HasFastqExtension(name string) bool {
	for _, ext := range Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}

	return false
}

// Filter decides which files are candidates. A file is kept when its
// basename has a FASTQ extension and, if Pattern is set, Pattern matches
// somewhere in the basename.
type Filter struct {
	Pattern *regexp.Regexp
}

// NewFilter compiles pattern. An empty pattern keeps every FASTQ file.
func NewFilter(pattern string) (Filter, error) {
	if pattern == "" {
		return Filter{}, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return Filter{}, fmt.Errorf("pattern %q: %w", pattern, err)
	}

	return Filter{Pattern: re}, nil
}

func (f Filter) Keep(path string) bool {
	base := pairing.Basename(path)
	if !HasFastqExtension(base) {
		return false
	}

	return f.Pattern == nil || f.Pattern.MatchString(base)
}

// Find returns the sorted candidate files under root. A gs://bucket/prefix
// root is listed through client, which may be nil for local roots.
func Find(ctx context.Context, root string, filter Filter, client *storage.Client) ([]string, error) {
	var files []string
	var err error

	if rnaseqprep.IsGoogleStorage(root) {
		files, err = findGoogleStorage(ctx, root, filter, client)
	} else {
		files, err = findLocal(ctx, root, filter)
	}
	if err != nil {
		return nil, err
	}

	sort.Strings(files)

	return files, nil
}

func findLocal(ctx context.Context, root string, filter Filter) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, pfx.Err(err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if filter.Keep(d.Name()) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, pfx.Err(err)
	}

	return files, nil
}

func findGoogleStorage(ctx context.Context, root string, filter Filter, client *storage.Client) ([]string, error) {
	if client == nil {
		return nil, fmt.Errorf("%s: no Google Storage client", root)
	}

	bucketName, prefix, err := rnaseqprep.SplitGoogleStoragePath(root)
	if err != nil {
		return nil, pfx.Err(err)
	}

	// The root names a folder, so don't let gs://b/run1 pick up gs://b/run10.
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var files []string
	it := client.Bucket(bucketName).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		} else if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", root, err))
		}

		if strings.HasSuffix(attrs.Name, "/") {
			continue
		}

		if filter.Keep(attrs.Name) {
			files = append(files, rnaseqprep.GoogleStoragePrefix+bucketName+"/"+attrs.Name)
		}
	}

	return files, nil
}
