package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListInputs computes the working set once: every .pdf directly inside dir,
// minus files already carrying the compressed-output suffix. The result is
// sorted for a stable processing order.
func ListInputs(dir, outputSuffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	guard := strings.ToLower(outputSuffix + ".pdf")

	var inputs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		if !strings.HasSuffix(name, ".pdf") {
			continue
		}
		// Re-processing guard: never compress our own outputs.
		if strings.HasSuffix(name, guard) {
			continue
		}
		inputs = append(inputs, filepath.Join(dir, e.Name()))
	}

	sort.Strings(inputs)
	return inputs, nil
}
