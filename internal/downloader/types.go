package downloader

// YTDLPInfo mirrors fields from yt-dlp --dump-json output that we care about.
// With a single-format selector the format fields describe that format.
type YTDLPInfo struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Uploader   string  `json:"uploader"`
	Channel    string  `json:"channel"`
	Duration   float64 `json:"duration"`
	WebpageURL string  `json:"webpage_url"`
	FormatID   string  `json:"format_id"`
	FormatNote string  `json:"format_note"`
	Ext        string  `json:"ext"`
	Height     int     `json:"height"`
	Filesize   int64   `json:"filesize"`
}
