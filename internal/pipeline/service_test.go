package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidgrab/internal/fetcher"
	"vidgrab/internal/model"
	"vidgrab/internal/progress"
	"vidgrab/internal/title"
)

type recordingReporter struct {
	batches []progress.BatchStart
	items   []progress.ItemStart
	updates []progress.Update
	logs    []progress.Log
	results []progress.Result
	done    []progress.Summary
}

func (r *recordingReporter) Batch(b progress.BatchStart) { r.batches = append(r.batches, b) }
func (r *recordingReporter) Item(i progress.ItemStart)   { r.items = append(r.items, i) }
func (r *recordingReporter) Update(u progress.Update)    { r.updates = append(r.updates, u) }
func (r *recordingReporter) Log(l progress.Log)          { r.logs = append(r.logs, l) }
func (r *recordingReporter) Result(res progress.Result)  { r.results = append(r.results, res) }
func (r *recordingReporter) Done(s progress.Summary)     { r.done = append(r.done, s) }

func (r *recordingReporter) logsAt(level progress.Level) []progress.Log {
	var out []progress.Log
	for _, l := range r.logs {
		if l.Level == level {
			out = append(out, l)
		}
	}
	return out
}

type fakeResolver struct {
	directCalls []string
	searchCalls []string
	failDirect  map[string]error
	failSearch  error
}

func (f *fakeResolver) ResolveDirect(_ context.Context, url string) (model.VideoMetadata, error) {
	f.directCalls = append(f.directCalls, url)
	if i := strings.IndexByte(url, '&'); i >= 0 {
		url = url[:i]
	}
	if err, ok := f.failDirect[url]; ok {
		return model.VideoMetadata{}, &model.MetadataFetchError{URL: url, Err: err}
	}
	return model.VideoMetadata{ID: url, Title: "Title of " + url[strings.LastIndexByte(url, '=')+1:], URL: url}, nil
}

func (f *fakeResolver) ResolveSearch(_ context.Context, keyword string) (model.SearchResult, error) {
	f.searchCalls = append(f.searchCalls, keyword)
	if f.failSearch != nil {
		return model.SearchResult{}, &model.SearchError{Keyword: keyword, Err: f.failSearch}
	}
	return model.SearchResult{
		Title: keyword,
		URL:   "https://www.youtube.com/watch?v=" + strings.ReplaceAll(keyword, " ", ""),
	}, nil
}

type fakeFetcher struct {
	dests []string
	err   error
}

func (f *fakeFetcher) Fetch(ctx context.Context, _ model.ResolvedItem, dest string, onProgress fetcher.ProgressFunc) error {
	f.dests = append(f.dests, dest)
	if f.err != nil {
		return &model.StreamError{Path: dest, Err: f.err}
	}
	for _, d := range []uint64{10, 55, 100} {
		onProgress(model.ProgressEvent{Downloaded: d, Total: 100})
	}
	return ctx.Err()
}

type failingTranslator struct{}

func (failingTranslator) Translate(context.Context, string, string) (string, error) {
	return "", errors.New("unsupported language")
}

func newTestService(t *testing.T, r Resolver, f Fetcher, rep progress.Reporter, opts model.Options, extra ...Option) *Service {
	t.Helper()
	if opts.OutDir == "" {
		opts.OutDir = t.TempDir()
	}
	all := []Option{WithResolver(r), WithFetcher(f), WithReporter(rep), WithOptions(opts)}
	return NewService(append(all, extra...)...)
}

func TestRunBatch_MixedInput(t *testing.T) {
	res := &fakeResolver{}
	fe := &fakeFetcher{}
	rep := &recordingReporter{}
	s := newTestService(t, res, fe, rep, model.Options{})

	sum := s.RunBatch(context.Background(), "list.txt", []string{"https://example.com/watch?v=abc&list=xyz", "", "funny cats"})

	if sum.Total != 2 || sum.Succeeded != 2 || sum.Failed != 0 {
		t.Errorf("summary = %+v", sum)
	}
	if len(rep.batches) != 1 || rep.batches[0].Total != 2 || rep.batches[0].Source != "list.txt" {
		t.Errorf("batch start = %+v", rep.batches)
	}
	if len(res.searchCalls) != 1 || res.searchCalls[0] != "funny cats" {
		t.Errorf("search calls = %q", res.searchCalls)
	}
	if len(res.directCalls) != 2 {
		t.Fatalf("direct calls = %q", res.directCalls)
	}
	if res.directCalls[1] != "https://www.youtube.com/watch?v=funnycats" {
		t.Errorf("search result not resolved: %q", res.directCalls[1])
	}

	// The metadata stage reports the truncated URL.
	var metaMsgs []string
	for _, u := range rep.updates {
		if u.Stage == progress.StageMetadata {
			metaMsgs = append(metaMsgs, u.Message)
		}
	}
	if len(metaMsgs) == 0 || metaMsgs[0] != "https://example.com/watch?v=abc" {
		t.Errorf("metadata messages = %q", metaMsgs)
	}

	if len(fe.dests) != 2 || filepath.Base(fe.dests[0]) != "Title-of-abc.mp4" {
		t.Errorf("fetch dests = %q", fe.dests)
	}
	if len(rep.done) != 1 {
		t.Errorf("done reported %d times", len(rep.done))
	}
}

func TestRunBatch_ItemOfTotalSequence(t *testing.T) {
	rep := &recordingReporter{}
	res := &fakeResolver{failDirect: map[string]error{"https://x.test/watch?v=2": errors.New("gone")}}
	s := newTestService(t, res, &fakeFetcher{}, rep, model.Options{})

	in := []string{"https://x.test/watch?v=1", "  ", "https://x.test/watch?v=2", "kw", ""}
	s.RunBatch(context.Background(), "", in)

	if len(rep.items) != 3 {
		t.Fatalf("items reported = %d, want 3", len(rep.items))
	}
	for i, it := range rep.items {
		if it.Index != i+1 || it.Total != 3 {
			t.Errorf("item %d = %+v, want %d of 3", i, it, i+1)
		}
	}
}

func TestRunBatch_FailureIsolation(t *testing.T) {
	res := &fakeResolver{failDirect: map[string]error{"https://x.test/watch?v=1": errors.New("unavailable")}}
	fe := &fakeFetcher{}
	rep := &recordingReporter{}
	s := newTestService(t, res, fe, rep, model.Options{})

	sum := s.RunBatch(context.Background(), "", []string{"https://x.test/watch?v=1", "https://x.test/watch?v=2"})

	if sum.Succeeded != 1 || sum.Failed != 1 {
		t.Errorf("summary = %+v", sum)
	}
	if len(res.directCalls) != 2 {
		t.Errorf("item 2 not attempted: %q", res.directCalls)
	}
	errs := rep.logsAt(progress.LevelError)
	if len(errs) != 1 || errs[0].Index != 1 || !strings.Contains(errs[0].Line, "error getting video info") {
		t.Errorf("error logs = %+v", errs)
	}
	if len(rep.results) != 2 {
		t.Fatalf("results = %+v", rep.results)
	}
	var mfe *model.MetadataFetchError
	if !errors.As(rep.results[0].Err, &mfe) {
		t.Errorf("result 1 err = %v", rep.results[0].Err)
	}
	if rep.results[1].Err != nil || rep.results[1].OutputPath == "" || rep.results[1].Bytes != 100 {
		t.Errorf("result 2 = %+v", rep.results[1])
	}
	if len(rep.done) != 1 {
		t.Errorf("done reported %d times", len(rep.done))
	}
}

func TestRunBatch_AllFail(t *testing.T) {
	res := &fakeResolver{failSearch: errors.New("provider down")}
	fe := &fakeFetcher{err: errors.New("connection reset")}
	rep := &recordingReporter{}
	s := newTestService(t, res, fe, rep, model.Options{})

	in := []string{"a", "b", "https://x.test/watch?v=1", "c"}
	sum := s.RunBatch(context.Background(), "", in)

	if sum.Total != 4 || sum.Failed != 4 || sum.Succeeded != 0 {
		t.Errorf("summary = %+v", sum)
	}
	if len(rep.items) != 4 || len(rep.results) != 4 {
		t.Errorf("dispatches = %d, results = %d", len(rep.items), len(rep.results))
	}
	if n := len(rep.logsAt(progress.LevelError)); n != 4 {
		t.Errorf("error logs = %d, want one per failure", n)
	}
	if len(rep.done) != 1 {
		t.Errorf("done reported %d times", len(rep.done))
	}
	var se *model.StreamError
	if !errors.As(rep.results[2].Err, &se) {
		t.Errorf("result 3 err = %v, want StreamError", rep.results[2].Err)
	}
}

func TestRunBatch_Empty(t *testing.T) {
	rep := &recordingReporter{}
	s := newTestService(t, &fakeResolver{}, &fakeFetcher{}, rep, model.Options{})

	sum := s.RunBatch(context.Background(), "empty.txt", []string{"", " ", "\t"})
	if sum.Total != 0 {
		t.Errorf("total = %d", sum.Total)
	}
	if len(rep.items) != 0 || len(rep.done) != 1 {
		t.Errorf("items=%d done=%d", len(rep.items), len(rep.done))
	}
}

func TestRunBatch_TranslationFallback(t *testing.T) {
	fe := &fakeFetcher{}
	rep := &recordingReporter{}
	s := newTestService(t, &fakeResolver{}, fe, rep, model.Options{Lang: "xx"},
		WithFormatter(title.NewFormatter(failingTranslator{})))

	sum := s.RunBatch(context.Background(), "", []string{"https://x.test/watch?v=abc"})
	if sum.Succeeded != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	if got := filepath.Base(fe.dests[0]); got != "Title-of-abc.mp4" {
		t.Errorf("dest = %q, want untranslated title", got)
	}
	if warns := rep.logsAt(progress.LevelWarn); len(warns) != 1 {
		t.Errorf("warnings = %+v", warns)
	}
}

func TestRunBatch_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rep := &recordingReporter{}
	fe := &cancelingFetcher{cancel: cancel}
	s := newTestService(t, &fakeResolver{}, fe, rep, model.Options{})

	sum := s.RunBatch(ctx, "", []string{"https://x.test/watch?v=1", "https://x.test/watch?v=2", "https://x.test/watch?v=3"})
	if !sum.Canceled || sum.Failed != 1 || sum.Skipped != 2 {
		t.Errorf("summary = %+v", sum)
	}
	if fe.calls != 1 {
		t.Errorf("fetch calls = %d, want 1", fe.calls)
	}
	if len(rep.done) != 1 {
		t.Errorf("done reported %d times", len(rep.done))
	}
}

func TestRunBatch_CanceledOnLastItem(t *testing.T) {
	tests := []struct {
		name     string
		locators []string
		wantOK   int
	}{
		{name: "only item", locators: []string{"https://x.test/watch?v=1"}},
		{name: "last item", locators: []string{"https://x.test/watch?v=1", "https://x.test/watch?v=2"}, wantOK: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			rep := &recordingReporter{}
			fe := &cancelingFetcher{cancel: cancel, after: len(tt.locators)}
			s := newTestService(t, &fakeResolver{}, fe, rep, model.Options{})

			sum := s.RunBatch(ctx, "", tt.locators)
			if !sum.Canceled || sum.Failed != 1 || sum.Succeeded != tt.wantOK || sum.Skipped != 0 {
				t.Errorf("summary = %+v", sum)
			}
			if len(rep.done) != 1 || !rep.done[0].Canceled {
				t.Errorf("done = %+v", rep.done)
			}
		})
	}
}

type cancelingFetcher struct {
	cancel context.CancelFunc
	after  int // cancel on this call; 0 means the first
	calls  int
}

func (f *cancelingFetcher) Fetch(ctx context.Context, _ model.ResolvedItem, dest string, _ fetcher.ProgressFunc) error {
	f.calls++
	if f.calls < f.after {
		return nil
	}
	f.cancel()
	return &model.StreamError{Path: dest, Err: ctx.Err()}
}

func TestRunOne(t *testing.T) {
	rep := &recordingReporter{}
	s := newTestService(t, &fakeResolver{}, &fakeFetcher{}, rep, model.Options{})

	res, err := s.RunOne(context.Background(), "https://x.test/watch?v=one")
	if err != nil {
		t.Fatalf("RunOne() error: %v", err)
	}
	if filepath.Base(res.OutputPath) != "Title-of-one.mp4" {
		t.Errorf("OutputPath = %q", res.OutputPath)
	}
	if len(rep.done) != 1 || rep.done[0].Succeeded != 1 {
		t.Errorf("done = %+v", rep.done)
	}
}

func TestRunOne_Errors(t *testing.T) {
	tests := []struct {
		name string
		loc  string
		res  *fakeResolver
		fe   *fakeFetcher
		as   func(error) bool
	}{
		{
			name: "invalid", loc: "   ", res: &fakeResolver{}, fe: &fakeFetcher{},
			as: func(err error) bool { var e *model.InvalidLocatorError; return errors.As(err, &e) },
		},
		{
			name: "search", loc: "cats", res: &fakeResolver{failSearch: errors.New("x")}, fe: &fakeFetcher{},
			as: func(err error) bool { var e *model.SearchError; return errors.As(err, &e) },
		},
		{
			name: "metadata", loc: "https://x.test/watch?v=1",
			res: &fakeResolver{failDirect: map[string]error{"https://x.test/watch?v=1": errors.New("x")}}, fe: &fakeFetcher{},
			as: func(err error) bool { var e *model.MetadataFetchError; return errors.As(err, &e) },
		},
		{
			name: "stream", loc: "https://x.test/watch?v=1", res: &fakeResolver{}, fe: &fakeFetcher{err: errors.New("reset")},
			as: func(err error) bool { var e *model.StreamError; return errors.As(err, &e) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := &recordingReporter{}
			s := newTestService(t, tt.res, tt.fe, rep, model.Options{})
			res, err := s.RunOne(context.Background(), tt.loc)
			if !tt.as(err) {
				t.Fatalf("error = %v (%T)", err, err)
			}
			if res.Err != err {
				t.Errorf("Result.Err = %v, want %v", res.Err, err)
			}
			if len(rep.done) != 1 || rep.done[0].Failed != 1 {
				t.Errorf("done = %+v", rep.done)
			}
		})
	}
}

func TestRunBatch_NoOverwrite(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Title-of-abc.mp4"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	fe := &fakeFetcher{}
	s := newTestService(t, &fakeResolver{}, fe, &recordingReporter{}, model.Options{OutDir: dir})
	s.RunBatch(context.Background(), "", []string{"https://x.test/watch?v=abc"})
	if got := filepath.Base(fe.dests[0]); got != "Title-of-abc (1).mp4" {
		t.Errorf("dest = %q", got)
	}

	fe2 := &fakeFetcher{}
	s2 := newTestService(t, &fakeResolver{}, fe2, &recordingReporter{}, model.Options{OutDir: dir, Overwrite: true})
	s2.RunBatch(context.Background(), "", []string{"https://x.test/watch?v=abc"})
	if got := filepath.Base(fe2.dests[0]); got != "Title-of-abc.mp4" {
		t.Errorf("overwrite dest = %q", got)
	}
}

func TestPlan(t *testing.T) {
	s := newTestService(t, &fakeResolver{}, &fakeFetcher{}, &recordingReporter{}, model.Options{OutDir: "out"})
	pl, err := s.Plan(context.Background(), "funny cats")
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if pl.Kind != model.LocatorSearch {
		t.Errorf("Kind = %v", pl.Kind)
	}
	if pl.OutputPath != filepath.Join("out", "Title-of-funnycats.mp4") {
		t.Errorf("OutputPath = %q", pl.OutputPath)
	}
}

func TestNoResolver(t *testing.T) {
	s := NewService()
	if _, err := s.RunOne(context.Background(), "https://x.test"); !errors.Is(err, errNoResolver) {
		t.Errorf("error = %v, want errNoResolver", err)
	}
}
