// synthfastq writes random paired-end FASTQ files and a samplesheet pointing
// at them, for checking that an RNA-seq pipeline runs end to end. Alignment
// rates on these reads will be close to zero.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/carbocation/rnaseqprep"
	_ "github.com/carbocation/rnaseqprep/compileinfoprint"
	"github.com/carbocation/rnaseqprep/synthfastq"
)

func main() {
	opts := synthfastq.DefaultOptions()
	samples := strings.Join(opts.Samples, ",")

	flag.StringVar(&opts.OutputDir, "output_dir", opts.OutputDir, "Output directory for FASTQ files. The samplesheet is written to its parent.")
	flag.IntVar(&opts.NumReads, "num_reads", opts.NumReads, "Number of read pairs per sample.")
	flag.IntVar(&opts.ReadLength, "read_length", opts.ReadLength, "Read length in bp.")
	flag.StringVar(&samples, "samples", samples, "Sample names, comma or space separated. Names may also be passed as trailing arguments.")
	flag.Int64Var(&opts.Seed, "seed", 0, "Random seed. 0 seeds from the clock.")
	flag.IntVar(&opts.Concurrency, "concurrency", opts.Concurrency, "Number of samples to generate at once.")
	flag.Parse()

	opts.Samples = synthfastq.ParseSampleList(samples)
	if flag.NArg() > 0 {
		opts.Samples = flag.Args()
	}

	var err error
	if opts.OutputDir, err = rnaseqprep.ExpandHome(opts.OutputDir); err != nil {
		log.Fatalln(err)
	}

	if err := opts.Validate(); err != nil {
		log.Println(err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	log.Printf("Creating %d samples with %d read pairs each (paired-end)\n", len(opts.Samples), opts.NumReads)

	pairs, err := synthfastq.Generate(context.Background(), opts)
	if err != nil {
		log.Fatalln(err)
	}
	for _, p := range pairs {
		log.Printf("Created %s and %s\n", p.Mate1, p.Mate2)
	}

	sheet, err := synthfastq.WriteSamplesheet(opts, pairs)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Samplesheet created:", sheet)

	report, err := synthfastq.Report(opts.OutputDir)
	if err != nil {
		log.Fatalln(err)
	}

	log.Printf("Files in %s:\n", opts.OutputDir)
	for _, f := range report.Files {
		log.Println(" ", f)
	}
	log.Printf("Total %.1f KB, mean %.1f KB per file\n", report.TotalKB, report.MeanKB)
	log.Println("These reads are random. Expect alignment rates near zero.")
}
