package downloader

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
	"time"

	"vidgrab/internal/util"
)

type fakeRunner struct {
	stdout string
	err    error
	specs  []util.CmdSpec
}

func (f *fakeRunner) Run(_ context.Context, spec util.CmdSpec) (util.CmdResult, error) {
	f.specs = append(f.specs, spec)
	return util.CmdResult{Stdout: []byte(f.stdout)}, f.err
}

const sampleInfo = `{"id":"abc","title":"Funny Cats","uploader":"","channel":"Cats Inc","duration":90.5,` +
	`"webpage_url":"https://vimeo.com/abc","format_id":"http-720p","format_note":"","ext":"mp4","height":720,"filesize":2048}`

func TestVideo(t *testing.T) {
	r := &fakeRunner{stdout: sampleInfo}
	var streamed util.CmdSpec
	y := New("/usr/bin/yt-dlp", WithRunner(r), WithStreamFunc(func(_ context.Context, spec util.CmdSpec) (io.ReadCloser, error) {
		streamed = spec
		return io.NopCloser(strings.NewReader("data")), nil
	}))

	md, err := y.Video(context.Background(), "https://vimeo.com/abc")
	if err != nil {
		t.Fatalf("Video() error: %v", err)
	}
	if md.ID != "abc" || md.Title != "Funny Cats" || md.Author != "Cats Inc" {
		t.Errorf("Video() = %+v", md)
	}
	if md.Duration != 90*time.Second+500*time.Millisecond {
		t.Errorf("Duration = %v", md.Duration)
	}
	if len(r.specs) != 1 || !slices.Contains(r.specs[0].Args, "--dump-json") {
		t.Errorf("metadata args = %+v", r.specs)
	}

	rc, size, err := md.Stream.Open(context.Background())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer rc.Close()
	if size != 2048 {
		t.Errorf("size = %d", size)
	}
	args := strings.Join(streamed.Args, " ")
	if !strings.Contains(args, "-f http-720p") || !strings.Contains(args, "-o -") || !strings.HasSuffix(args, "https://vimeo.com/abc") {
		t.Errorf("stream args = %q", args)
	}

	s := md.Stream.(*ytdlpStream)
	if s.Size() != 2048 || s.Quality() != "720p" {
		t.Errorf("Size() = %d, Quality() = %q", s.Size(), s.Quality())
	}
}

func TestVideo_Errors(t *testing.T) {
	if _, err := New("").Video(context.Background(), "u"); err == nil {
		t.Error("expected error without binary path")
	}

	y := New("yt-dlp", WithRunner(&fakeRunner{err: errors.New("exit 1")}))
	if _, err := y.Video(context.Background(), "u"); err == nil || !strings.Contains(err.Error(), "metadata fetch failed") {
		t.Errorf("error = %v", err)
	}

	y = New("yt-dlp", WithRunner(&fakeRunner{stdout: "not json"}))
	if _, err := y.Video(context.Background(), "u"); err == nil || !strings.Contains(err.Error(), "parse metadata JSON") {
		t.Errorf("error = %v", err)
	}
}

func TestParseInfo_Recovery(t *testing.T) {
	out := "WARNING: something\n" + `{"id":"first"}` + "\n" + sampleInfo + "\n"
	info, err := parseInfo([]byte(out))
	if err != nil {
		t.Fatalf("parseInfo() error: %v", err)
	}
	if info.ID != "abc" {
		t.Errorf("ID = %q, want last object", info.ID)
	}
}

func TestStreamArgs_NoFormatID(t *testing.T) {
	s := &ytdlpStream{url: "u", info: YTDLPInfo{Ext: "webm"}}
	if got := s.args()[1]; got != formatSelector {
		t.Errorf("format = %q", got)
	}
	if s.Quality() != "webm" || s.Size() != 0 {
		t.Errorf("Quality() = %q, Size() = %d", s.Quality(), s.Size())
	}
}
