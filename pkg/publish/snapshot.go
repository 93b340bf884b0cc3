package publish

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	clientdist "github.com/marquee-dev/marquee/client/dist"
	"github.com/marquee-dev/marquee/pkg/render"
	"github.com/marquee-dev/marquee/pkg/site"
)

// SnapshotConfig configures a static export.
type SnapshotConfig struct {
	// Site is the site to export. Required.
	Site *site.Site

	// StaticDir is an optional directory of assets to publish alongside
	// the page.
	StaticDir string

	// StaticPrefix is the URL prefix the assets are served under, so the
	// exported paths match the live server's. Defaults to "/static/".
	StaticPrefix string
}

// Snapshot renders the site to the file set a static host needs: the
// page as index.html, the thin client bundle at its served path, and
// the static assets under their prefix. The page is rendered without a
// CSRF token, so the export is a plain document with no live session.
func Snapshot(config SnapshotConfig) ([]Item, error) {
	if config.Site == nil {
		return nil, errors.New("publish: snapshot needs a site")
	}

	page, err := config.Site.Page("/")
	if err != nil {
		return nil, fmt.Errorf("publish: build page: %w", err)
	}

	var buf bytes.Buffer
	renderer := render.NewRenderer(render.RendererConfig{})
	err = renderer.RenderPage(&buf, render.PageData{
		Body:        page,
		Title:       config.Site.Title(),
		Description: config.Site.Description(),
	})
	if err != nil {
		return nil, fmt.Errorf("publish: render page: %w", err)
	}

	items := []Item{
		{Path: "index.html", ContentType: ContentType("index.html"), Body: buf.Bytes()},
		{Path: "_marquee/client.js", ContentType: ContentType("client.js"), Body: clientdist.MarqueeJS},
	}

	if config.StaticDir != "" {
		prefix := config.StaticPrefix
		if prefix == "" {
			prefix = "/static/"
		}
		assets, err := collectDir(config.StaticDir, strings.Trim(prefix, "/"))
		if err != nil {
			return nil, err
		}
		items = append(items, assets...)
	}
	return items, nil
}

// collectDir reads every regular file under dir into items, placing each
// at prefix joined with its path relative to dir.
func collectDir(dir, prefix string) ([]Item, error) {
	var items []Item
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		body, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		items = append(items, Item{
			Path:        path.Join(prefix, filepath.ToSlash(rel)),
			ContentType: ContentType(rel),
			Body:        body,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("publish: read assets: %w", err)
	}
	return items, nil
}
