package pipeline

import "vidgrab/internal/locator"

// batch is an index cursor over an immutable snapshot of the filtered
// locators. total is fixed when the batch is loaded.
type batch struct {
	items  []string
	cursor int
	total  int
}

func newBatch(locators []string) *batch {
	items := locator.Filter(locators)
	return &batch{items: items, total: len(items)}
}

// next returns the 1-based index and locator of the next item.
func (b *batch) next() (int, string, bool) {
	if b.cursor >= len(b.items) {
		return 0, "", false
	}
	loc := b.items[b.cursor]
	b.cursor++
	return b.cursor, loc, true
}
