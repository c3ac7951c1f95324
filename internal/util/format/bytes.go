package format

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// HumanizeBytes converts a byte count into a human-readable string (e.g., "1.5 MiB").
func HumanizeBytes(b uint64) string {
	return humanize.IBytes(b)
}

// Transfer renders "downloaded / total", or just the downloaded amount when
// the total is unknown.
func Transfer(downloaded, total uint64) string {
	if total == 0 {
		return HumanizeBytes(downloaded)
	}
	return fmt.Sprintf("%s / %s", HumanizeBytes(downloaded), HumanizeBytes(total))
}

// Percent returns 0..100, or -1 when total is unknown.
func Percent(downloaded, total uint64) float64 {
	if total == 0 {
		return -1
	}
	p := float64(downloaded) * 100 / float64(total)
	if p > 100 {
		return 100
	}
	return p
}
