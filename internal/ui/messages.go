package ui

import "vidgrab/internal/progress"

type batchStartMsg struct {
	B progress.BatchStart
}

type itemStartMsg struct {
	I progress.ItemStart
}

type jobUpdateMsg struct {
	U progress.Update
}

type jobLogMsg struct {
	L progress.Log
}

type jobResultMsg struct {
	R progress.Result
}

type allDoneMsg struct {
	S progress.Summary
}
