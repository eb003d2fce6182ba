// Package rnaseqprep holds the I/O helpers shared by the samplesheet and
// synthetic FASTQ tools: opening local or Google Storage files, sniffing
// compression, guessing delimiters and expanding home directories.
package rnaseqprep
