package synthfastq

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/carbocation/pfx"
	gzip "github.com/klauspost/pgzip"
	"github.com/seqyuan/annogene/io/fastq"
	"golang.org/x/sync/errgroup"
)

// Pair names the two files written for one sample.
type Pair struct {
	Sample string
	Mate1  string
	Mate2  string
}

// Generate writes <sample>_1.fastq.gz and <sample>_2.fastq.gz for every
// sample into opts.OutputDir, creating it if needed. Pairs are returned in
// the order of opts.Samples.
func Generate(ctx context.Context, opts Options) ([]Pair, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, pfx.Err(err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	pairs := make([]Pair, len(opts.Samples))

	g, ctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for i, sample := range opts.Samples {
		i, sample := i, sample
		g.Go(func() error {
			pair := Pair{
				Sample: sample,
				Mate1:  filepath.Join(opts.OutputDir, FileName(sample, 1)),
				Mate2:  filepath.Join(opts.OutputDir, FileName(sample, 2)),
			}

			for mate, path := range []string{pair.Mate1, pair.Mate2} {
				maker := newReadMaker(seed, sample, mate+1, opts.ReadLength)
				if err := writeFastq(ctx, path, maker, opts.NumReads); err != nil {
					// Don't leave mate 1 without its partner.
					if mate == 1 {
						os.Remove(pair.Mate1)
					}
					return err
				}
			}

			pairs[i] = pair
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return pairs, nil
}

func writeFastq(ctx context.Context, path string, maker *readMaker, numReads int) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	// Only complete files are left on disk.
	if err := writeReads(ctx, f, maker, numReads); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return pfx.Err(err)
	}

	return nil
}

func writeReads(ctx context.Context, f io.Writer, maker *readMaker, numReads int) error {
	zw := gzip.NewWriter(f)
	bw := bufio.NewWriterSize(zw, 1<<20)
	w := fastq.NewWriter(bw)

	for n := 1; n <= numReads; n++ {
		if n%4096 == 1 {
			if err := ctx.Err(); err != nil {
				zw.Close()
				return err
			}
		}

		if _, err := w.Write(maker.read(n)); err != nil {
			zw.Close()
			return pfx.Err(err)
		}
	}

	if err := bw.Flush(); err != nil {
		zw.Close()
		return pfx.Err(err)
	}

	return pfx.Err(zw.Close())
}
