package media

import (
	"path/filepath"

	"vidgrab/internal/model"
)

// Extension is the container written for every download.
const Extension = ".mp4"

// FileName returns "<DisplayTitle>.mp4".
func FileName(item model.ResolvedItem) string {
	return item.DisplayTitle + Extension
}

// OutputPath joins the output directory with the item's file name.
func OutputPath(outDir string, item model.ResolvedItem) string {
	if outDir == "" {
		outDir = "."
	}
	return filepath.Join(outDir, FileName(item))
}
