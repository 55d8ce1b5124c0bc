package upload

import (
	"mime"
	"path/filepath"
	"strings"
)

// DetectMediaType returns the declared media type for a file path based
// on its extension, mirroring what a browser file input would declare.
// Unknown extensions yield "".
func DetectMediaType(path string) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if i := strings.Index(t, ";"); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}
