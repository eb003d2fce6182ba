// samplesheet scans a directory (local or gs://) or reads a manifest of
// FASTQ files, pairs mates by file name, and writes an nf-core/rnaseq
// samplesheet.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"sort"

	"cloud.google.com/go/storage"
	"github.com/carbocation/rnaseqprep"
	_ "github.com/carbocation/rnaseqprep/compileinfoprint"
	"github.com/carbocation/rnaseqprep/fastqscan"
	"github.com/carbocation/rnaseqprep/pairing"
	"github.com/carbocation/rnaseqprep/samplesheet"
)

// Safe for concurrent use by multiple goroutines
var client *storage.Client

func main() {
	var inputDir, manifest, output, strandedness, pattern, s3Bucket, localPrefix, conventionsPath string

	flag.StringVar(&inputDir, "input_dir", "", "Directory containing FASTQ files. May be a gs://bucket/prefix. Required unless -manifest is set. If no FASTQ files are found, nothing is written and the exit status is 1.")
	flag.StringVar(&manifest, "manifest", "", "Optional. File listing FASTQ paths, either one per line or as a delimited table with a 'path', 'fastq' or 'file' column. May be compressed and may be on gs://.")
	flag.StringVar(&output, "output", "samplesheet.csv", "Output samplesheet CSV file.")
	flag.StringVar(&strandedness, "strandedness", string(samplesheet.Auto), "Library strandedness: auto, unstranded, forward or reverse.")
	flag.StringVar(&pattern, "pattern", "", "Optional. Regex that FASTQ file names must match to be included.")
	flag.StringVar(&s3Bucket, "s3_bucket", "", "Optional. Replacement for -local_prefix in the written paths (e.g., s3://my-bucket/fastq).")
	flag.StringVar(&localPrefix, "local_prefix", "", "Optional. Local path prefix to replace with -s3_bucket.")
	flag.StringVar(&conventionsPath, "conventions", "", "Optional. Delimited file with columns name, mate1, mate2 giving mate naming conventions to use instead of the defaults, in priority order.")
	flag.Parse()

	if inputDir == "" && manifest == "" {
		log.Println("Please pass -input_dir or -manifest")
		flag.PrintDefaults()
		os.Exit(1)
	}

	strand, err := samplesheet.ParseStrandedness(strandedness)
	if err != nil {
		log.Println(err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	filter, err := fastqscan.NewFilter(pattern)
	if err != nil {
		log.Fatalln(err)
	}

	remap := samplesheet.PathRemap{Local: localPrefix, Remote: s3Bucket}
	if (localPrefix != "" || s3Bucket != "") && !remap.Active() {
		log.Println("Both -s3_bucket and -local_prefix are needed to rewrite paths; writing them unchanged")
	}

	conventions := pairing.DefaultConventions()
	if conventionsPath != "" {
		if conventionsPath, err = rnaseqprep.ExpandHome(conventionsPath); err != nil {
			log.Fatalln(err)
		}
		if conventions, err = pairing.LoadConventions(conventionsPath); err != nil {
			log.Fatalln(err)
		}
		log.Printf("Using %d mate naming conventions from %s\n", len(conventions), conventionsPath)
	}

	for _, p := range []*string{&inputDir, &manifest, &output} {
		if *p, err = rnaseqprep.ExpandHome(*p); err != nil {
			log.Fatalln(err)
		}
	}

	// Initialize the Google Storage client only if we're pointing to Google
	// Storage paths.
	if rnaseqprep.AnyGoogleStorage(inputDir, manifest) {
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	files, err := collect(context.Background(), inputDir, manifest, filter)
	if err != nil {
		log.Fatalln(err)
	}

	if len(files) == 0 {
		log.Println("ERROR: No FASTQ files found!")
		os.Exit(1)
	}

	log.Printf("Found %d FASTQ files\n", len(files))

	samples, collisions := pairing.Resolve(files, conventions)
	for _, c := range collisions {
		log.Println("Name collision:", c)
	}

	rows := samplesheet.FromSamples(samples, strand, remap)
	if err := samplesheet.WriteFile(output, rows); err != nil {
		log.Fatalln(err)
	}

	summary := samplesheet.Summarize(rows)
	log.Println("Samplesheet written to:", output)
	log.Println("Total samples:", summary.Total)
	log.Println("Paired-end:", summary.Paired)
	log.Println("Single-end:", summary.Single)
}

// collect gathers candidates from the directory and the manifest, whichever
// are set.
func collect(ctx context.Context, inputDir, manifest string, filter fastqscan.Filter) ([]string, error) {
	var files []string

	if inputDir != "" {
		log.Println("Scanning directory:", inputDir)
		found, err := fastqscan.Find(ctx, inputDir, filter, client)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	if manifest != "" {
		log.Println("Reading manifest:", manifest)
		listed, err := fastqscan.ReadManifest(ctx, manifest, filter, client)
		if err != nil {
			return nil, err
		}
		files = append(files, listed...)
	}

	// The two sources may overlap.
	sort.Strings(files)
	out := files[:0]
	for i, f := range files {
		if i > 0 && f == files[i-1] {
			continue
		}
		out = append(out, f)
	}

	return out, nil
}
