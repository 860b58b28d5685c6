// Package stacktrace trims panic stacks down to the frames that matter.
package stacktrace

import "strings"

// InternalPaths extracts the file:line locations under internal/ from a raw
// goroutine stack, ordered innermost first. Runtime and third-party frames
// are skipped so panic logs point straight at service code.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, 8)

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		idx := strings.Index(line, ".go:")
		if idx == -1 || !strings.Contains(line, "/internal/") {
			continue
		}

		end := strings.Index(line[idx:], " ")
		if end == -1 {
			end = len(line)
		} else {
			end += idx
		}

		loc := line[:end]
		if cut := strings.Index(loc, "/internal/"); cut != -1 {
			paths = append(paths, loc[cut+1:])
		}
	}

	return paths
}
