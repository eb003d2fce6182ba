package synthfastq

import (
	"hash/fnv"
	"math/rand"
	"strconv"

	"github.com/seqyuan/annogene/io/fastq"
)

const (
	bases = "ACGT"

	// Mostly Q40, Phred+33.
	qualities = "IIIIIIIIIIHHHHHGGGGGFFFFF"
)

// FileName is the output name for one mate of a sample.
func FileName(sample string, mate int) string {
	return sample + "_" + strconv.Itoa(mate) + ".fastq.gz"
}

// ReadName is the header line, including the leading '@', of read n.
func ReadName(sample string, n, mate int) string {
	return "@" + sample + "." + strconv.Itoa(n) + " " + strconv.Itoa(n) + "/" + strconv.Itoa(mate)
}

// fileSeed derives a per-file seed so that a file's contents depend only on
// the run seed, the sample and the mate.
func fileSeed(seed int64, sample string, mate int) int64 {
	h := fnv.New64a()
	h.Write([]byte(sample))
	h.Write([]byte{byte(mate)})

	return seed ^ int64(h.Sum64())
}

type readMaker struct {
	rng        *rand.Rand
	sample     string
	mate       int
	readLength int
}

func newReadMaker(seed int64, sample string, mate, readLength int) *readMaker {
	return &readMaker{
		rng:        rand.New(rand.NewSource(fileSeed(seed, sample, mate))),
		sample:     sample,
		mate:       mate,
		readLength: readLength,
	}
}

func (m *readMaker) read(n int) fastq.Sequence {
	letters := make([]byte, m.readLength)
	quality := make([]byte, m.readLength)
	for i := range letters {
		letters[i] = bases[m.rng.Intn(len(bases))]
	}
	for i := range quality {
		quality[i] = qualities[m.rng.Intn(len(qualities))]
	}

	return fastq.Sequence{
		ID1:     []byte(ReadName(m.sample, n, m.mate)),
		Letters: letters,
		ID2:     []byte("+"),
		Quality: quality,
	}
}
