package publish

import (
	"context"
	"path"
	"strings"
)

// Item is one file of a published site.
type Item struct {
	// Path is the slash-separated location relative to the site root,
	// e.g. "index.html" or "static/styles.css".
	Path string

	// ContentType is the MIME type the file is served with.
	ContentType string

	// Body is the file content.
	Body []byte
}

// Publisher writes a complete site to a destination, replacing whatever
// was published there before.
type Publisher interface {
	Publish(ctx context.Context, items []Item) error
}

// contentTypes covers the extensions a marketing site ships. Unknown
// extensions fall back to application/octet-stream.
var contentTypes = map[string]string{
	".html":  "text/html; charset=utf-8",
	".css":   "text/css; charset=utf-8",
	".js":    "text/javascript; charset=utf-8",
	".json":  "application/json",
	".svg":   "image/svg+xml",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".webp":  "image/webp",
	".ico":   "image/x-icon",
	".txt":   "text/plain; charset=utf-8",
	".xml":   "application/xml",
	".pdf":   "application/pdf",
	".woff":  "font/woff",
	".woff2": "font/woff2",
}

// ContentType returns the MIME type for a path, by extension.
func ContentType(p string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(p))]; ok {
		return ct
	}
	return "application/octet-stream"
}
