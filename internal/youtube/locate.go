package youtube

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Accepted artifact extensions. The transcoder chooses the final extension,
// so the locator accepts either container.
var audioExtensions = map[string]bool{
	".mp3": true,
	".m4a": true,
}

// LocateArtifact finds the audio file a download produced by filename
// prefix, returning the most recently modified match. Prefix plus mtime is
// the only reliable correlation: the backend may leave temporary sibling
// files with the same stem during post-processing.
func LocateArtifact(dir, basePrefix string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	var (
		bestPath  string
		bestMtime time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, basePrefix) {
			continue
		}
		if !audioExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if bestPath == "" || info.ModTime().After(bestMtime) {
			bestPath = filepath.Join(dir, name)
			bestMtime = info.ModTime()
		}
	}

	return bestPath, bestPath != ""
}
