package domain

import (
	"path"
	"strings"
)

// DefaultOutputParent is the directory under which a run's output dir is
// placed when the caller did not pass --output-dir.
const DefaultOutputParent = "output"

// outputDirFlag is the training flag whose value receives the run suffix.
const outputDirFlag = "--output-dir"

// RewriteOutputDir returns args with the run identifier appended to the
// output directory, so repeated jobs never write into the same directory:
//
//   - "--output-dir VALUE" becomes "--output-dir VALUE/<runID>"
//   - "--output-dir=VALUE" becomes "--output-dir=VALUE/<runID>"
//   - without the flag, "--output-dir <DefaultOutputParent>/<runID>" is appended
//
// Only the first occurrence is rewritten. The input slice is not modified.
func RewriteOutputDir(args []string, runID string) []string {
	out := make([]string, len(args), len(args)+2)
	copy(out, args)
	for i, arg := range out {
		if arg == outputDirFlag {
			if i+1 < len(out) {
				out[i+1] = path.Join(out[i+1], runID)
				return out
			}
			// Dangling flag: complete the pair.
			return append(out, path.Join(DefaultOutputParent, runID))
		}
		if v, ok := strings.CutPrefix(arg, outputDirFlag+"="); ok {
			out[i] = outputDirFlag + "=" + path.Join(v, runID)
			return out
		}
	}
	return append(out, outputDirFlag, path.Join(DefaultOutputParent, runID))
}
