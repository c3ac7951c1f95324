package resolver

import "encoding/json"

// searchInfo mirrors the yt-dlp --dump-json fields used for search results.
type searchInfo struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	FullTitle      string          `json:"fulltitle"`
	WebpageURL     string          `json:"webpage_url"`
	PlayerResponse json.RawMessage `json:"player_response"`
}

type playerResponse struct {
	VideoDetails struct {
		Title string `json:"title"`
	} `json:"videoDetails"`
}
