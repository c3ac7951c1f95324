// Package progress defines the events the orchestrator emits and the
// Reporter interface that renders them.
package progress

import "vidgrab/internal/model"

// Stage identifies a high-level step for the current item.
type Stage string

const (
	StageSearching   Stage = "searching"
	StageMetadata    Stage = "metadata"
	StageTranslating Stage = "translating"
	StageDownloading Stage = "downloading"
	StageCompleted   Stage = "completed"
	StageError       Stage = "error"
)

// Level is the severity of a Log line.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
	LevelSuccess
)

// BatchStart is emitted once when a batch is loaded.
type BatchStart struct {
	Source string // file path, "-" for stdin, empty for arguments
	Total  int
}

// ItemStart is emitted before each dispatch: item Index of Total (1-based).
type ItemStart struct {
	Index   int
	Total   int
	Locator string
}

// Update conveys stage changes and byte progress for the current item.
type Update struct {
	Index    int
	Stage    Stage
	Progress model.ProgressEvent
	Message  string
}

// Log is a user-facing message line.
type Log struct {
	Index int
	Level Level
	Line  string
}

// Result is emitted once per dispatched item.
type Result struct {
	Index      int
	Locator    string
	OutputPath string
	Bytes      uint64
	Err        error // nil on success
}

// Summary is emitted exactly once when the batch reaches Done.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	Canceled  bool
}

// Reporter is implemented by the terminal front-ends and test recorders.
type Reporter interface {
	Batch(b BatchStart)
	Item(i ItemStart)
	Update(u Update)
	Log(l Log)
	Result(r Result)
	Done(s Summary)
}

// Discard is a Reporter that drops everything.
type Discard struct{}

func (Discard) Batch(BatchStart) {}
func (Discard) Item(ItemStart)   {}
func (Discard) Update(Update)    {}
func (Discard) Log(Log)          {}
func (Discard) Result(Result)    {}
func (Discard) Done(Summary)     {}
