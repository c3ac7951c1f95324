package ui

import "vidgrab/internal/progress"

type jobState struct {
	index   int
	locator string
	stage   progress.Stage
	status  string
	err     error
	done    bool

	outputPath string
	downloaded uint64
	total      uint64
	percent    float64 // -1 means unknown

	warnings []string
}

func newJobState(index int, locator string) *jobState {
	return &jobState{
		index:   index,
		locator: locator,
		stage:   progress.StageMetadata,
		status:  "Queued",
		percent: -1,
	}
}
