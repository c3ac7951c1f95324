package locator

import (
	"bufio"
	"io"
	"strings"

	"vidgrab/internal/model"
)

var controlStripper = strings.NewReplacer("\t", "", "\r", "", "\v", "", "\f", "")

// ReadLines reads batch input and returns the non-blank locators in order.
func ReadLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024
	sc.Buffer(make([]byte, 0, 4096), maxLine)

	var out []string
	for sc.Scan() {
		line := strings.TrimSpace(controlStripper.Replace(sc.Text()))
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Filter drops blank entries, keeping order.
func Filter(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if Classify(s) == model.LocatorInvalid {
			continue
		}
		out = append(out, strings.TrimSpace(s))
	}
	return out
}
