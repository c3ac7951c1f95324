package fetcher

import (
	"errors"
	"fmt"
	"io"

	"vidgrab/internal/model"
)

var errEmptyStream = errors.New("empty stream")

// transfer counts bytes and emits ProgressEvents. Completion is signaled
// exactly once, when downloaded reaches a known, non-zero total.
type transfer struct {
	downloaded uint64
	total      uint64
	completed  int
	emit       func(model.ProgressEvent)
}

func newTransfer(size int64, emit func(model.ProgressEvent)) *transfer {
	t := &transfer{emit: emit}
	if size > 0 {
		t.total = uint64(size)
	}
	return t
}

func (t *transfer) Write(p []byte) (int, error) {
	t.observe(uint64(len(p)))
	if t.total > 0 && t.downloaded > t.total {
		return 0, fmt.Errorf("received %d bytes, expected %d", t.downloaded, t.total)
	}
	return len(p), nil
}

func (t *transfer) observe(n uint64) {
	if n == 0 {
		return
	}
	t.downloaded += n
	if t.total > 0 && t.downloaded > t.total {
		return
	}
	ev := model.ProgressEvent{Downloaded: t.downloaded, Total: t.total}
	t.emit(ev)
	if ev.Complete() {
		t.completed++
	}
}

// finish runs at EOF. Unknown totals are fixed to the byte count so the
// final event reads as complete.
func (t *transfer) finish() error {
	if t.total == 0 {
		if t.downloaded == 0 {
			return errEmptyStream
		}
		t.total = t.downloaded
		t.emit(model.ProgressEvent{Downloaded: t.downloaded, Total: t.total})
		t.completed++
	}
	if t.downloaded < t.total {
		return fmt.Errorf("%w: got %d of %d bytes", io.ErrUnexpectedEOF, t.downloaded, t.total)
	}
	if t.completed != 1 {
		return fmt.Errorf("completion signaled %d times", t.completed)
	}
	return nil
}
