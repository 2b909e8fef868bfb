package recognize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// VerifyModelDir checks that path looks like an extracted vosk-style model
// directory and returns an actionable error if it does not. The native
// loader fails with an opaque message when files are missing; this names
// what was expected instead. Different model layouts exist, so the check
// passes if any known marker file is present.
func VerifyModelDir(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("recognize: model path does not exist: %s", abs)
	}

	candidates := []string{
		filepath.Join(abs, "am", "final.mdl"),
		filepath.Join(abs, "final.mdl"),
		filepath.Join(abs, "graph", "Gr.fst"),
		filepath.Join(abs, "ivector", "final.ie"),
	}

	missing := 0
	for _, c := range candidates {
		if _, err := os.Stat(c); err != nil {
			missing++
		}
	}
	if missing == len(candidates) {
		var b strings.Builder
		for _, c := range candidates {
			fmt.Fprintf(&b, " - %s\n", c)
		}
		return fmt.Errorf(
			"recognize: no expected model files under %s\nchecked (none present):\n%s"+
				"make sure a model archive was downloaded and extracted into this folder",
			abs, b.String())
	}

	// A missing words list is the most common partial-extraction failure.
	words := filepath.Join(abs, "graph", "words.txt")
	if _, err := os.Stat(words); err != nil {
		return fmt.Errorf(
			"recognize: missing required file %s; the model archive was likely not fully extracted",
			words)
	}

	return nil
}
