package run

import "strings"

// Substrings marking worker stderr lines that carry no information
var benignStderr = []string{
	"cuaev not installed",
	"Creating a tensor from a list of numpy",
	"cell = torch.tensor(self.atoms.get_cell(complete=True)",
}

// FilterStderr drops the worker's known benign warnings and returns
// the lines worth reporting, nil when nothing remains.
func FilterStderr(data string) []string {
	if data == "" {
		return nil
	}

	lines := strings.Split(strings.TrimSuffix(data, "\n"), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if benignStderrLine(line) {
			continue
		}
		kept = append(kept, line)
	}

	if len(kept) == 0 {
		return nil
	}
	return kept
}

func benignStderrLine(line string) bool {
	for _, marker := range benignStderr {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
