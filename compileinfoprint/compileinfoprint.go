// Package compileinfoprint prints the build provenance of the importing
// binary to stderr at start-up. Import it for its side effect.
package compileinfoprint

import "github.com/carbocation/rnaseqprep/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
