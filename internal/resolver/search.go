package resolver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"vidgrab/internal/model"
	"vidgrab/internal/title"
)

const watchURL = "https://www.youtube.com/watch?v="

// parseSearchOutput decodes yt-dlp stdout. Warnings can precede the JSON,
// so when the whole buffer fails to decode the last JSON line wins.
func parseSearchOutput(stdout []byte) (searchInfo, error) {
	data := bytes.TrimSpace(stdout)
	if len(data) == 0 {
		return searchInfo{}, errors.New("no results")
	}
	var info searchInfo
	if err := json.Unmarshal(data, &info); err == nil {
		return info, nil
	}
	lines := bytes.Split(data, []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		line := bytes.TrimSpace(lines[i])
		if len(line) == 0 || line[0] != '{' {
			continue
		}
		var tmp searchInfo
		if json.Unmarshal(line, &tmp) == nil && (tmp.ID != "" || tmp.WebpageURL != "") {
			return tmp, nil
		}
	}
	return searchInfo{}, errors.New("parse search result JSON")
}

// titleRule is one row of the title decision table, tried in order.
type titleRule struct {
	source  model.TitleSource
	extract func(searchInfo) string
}

var titleRules = []titleRule{
	{source: model.TitleExplicitField, extract: func(i searchInfo) string { return i.Title }},
	{source: model.TitleEmbeddedField, extract: embeddedTitle},
}

// pickTitle walks the decision table and falls back to the placeholder.
func pickTitle(info searchInfo) (string, model.TitleSource) {
	for _, r := range titleRules {
		if t := strings.TrimSpace(r.extract(info)); t != "" {
			return t, r.source
		}
	}
	return title.Placeholder, model.TitlePlaceholder
}

func embeddedTitle(info searchInfo) string {
	if t := strings.TrimSpace(info.FullTitle); t != "" {
		return t
	}
	raw := bytes.TrimSpace(info.PlayerResponse)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	// player_response is either a JSON-encoded string or an object.
	if raw[0] == '"' {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return ""
		}
		raw = []byte(s)
	}
	var pr playerResponse
	if json.Unmarshal(raw, &pr) != nil {
		return ""
	}
	return pr.VideoDetails.Title
}

// toSearchResult builds the canonical watch URL and picks a title.
func toSearchResult(info searchInfo) (model.SearchResult, error) {
	var u string
	switch {
	case info.ID != "":
		u = watchURL + info.ID
	case info.WebpageURL != "":
		u = info.WebpageURL
	default:
		return model.SearchResult{}, fmt.Errorf("search result has no id")
	}
	t, src := pickTitle(info)
	return model.SearchResult{Title: t, URL: u, TitleSource: src}, nil
}
