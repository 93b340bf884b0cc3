package render

import (
	"fmt"
	"io"

	"github.com/marquee-dev/marquee/pkg/vdom"
)

// CSRFMetaName is the name of the meta tag carrying the session CSRF token.
// The thin client reads it and presents the token during the WebSocket
// handshake.
const CSRFMetaName = "marquee-csrf"

// DefaultClientPath is where the embedded thin client script is served.
const DefaultClientPath = "/_marquee/client.js"

// PageData carries everything needed to render a complete HTML document.
type PageData struct {
	// Body is the root node for the page content.
	Body *vdom.VNode

	// Title is the page title.
	Title string

	// Description is rendered as the meta description when non-empty.
	Description string

	// Lang is the html element's language attribute. Defaults to "en".
	Lang string

	// Meta contains additional meta tags for the head.
	Meta []MetaTag

	// Links contains link tags (favicon, preconnect, etc.).
	Links []LinkTag

	// StyleSheets contains hrefs rendered as stylesheet links.
	StyleSheets []string

	// Styles contains inline CSS blocks.
	Styles []string

	// Scripts contains additional script tags for the head.
	Scripts []ScriptTag

	// CSRFToken is minted per page load and rendered as a meta tag; the
	// WebSocket handshake echoes it back. Empty omits the tag, which
	// leaves the page static.
	CSRFToken string

	// ClientScript overrides where the thin client is loaded from.
	// Defaults to DefaultClientPath.
	ClientScript string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name      string
	Content   string
	Property  string // for OpenGraph tags
	HTTPEquiv string
	Charset   string
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel         string
	Href        string
	Type        string
	Sizes       string
	CrossOrigin string
	Media       string
}

// ScriptTag represents a script element in the document head.
type ScriptTag struct {
	Src    string
	Type   string
	Defer  bool
	Async  bool
	Module bool   // type="module"
	Inline string // inline script content
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	if err := r.renderDocOpen(w, page); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}
	return r.renderDocClose(w, page)
}

// renderDocOpen writes everything up to and including the opening body tag.
// StreamingRenderer flushes at this boundary.
func (r *Renderer) renderDocOpen(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `<html lang="%s">`+"\n", escapeAttr(lang)); err != nil {
		return err
	}
	if err := r.renderHead(w, page); err != nil {
		return err
	}
	_, err := io.WriteString(w, "<body>\n")
	return err
}

// renderDocClose injects the thin client script and closes the document.
func (r *Renderer) renderDocClose(w io.Writer, page PageData) error {
	if err := r.renderClientScript(w, page); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<head>\n"); err != nil {
		return err
	}

	if _, err := io.WriteString(w, `  <meta charset="utf-8">`+"\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `  <meta name="viewport" content="width=device-width, initial-scale=1">`+"\n"); err != nil {
		return err
	}

	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	if page.Description != "" {
		if _, err := fmt.Fprintf(w, `  <meta name="description" content="%s">`+"\n", escapeAttr(page.Description)); err != nil {
			return err
		}
	}
	if page.CSRFToken != "" {
		if _, err := fmt.Fprintf(w, `  <meta name="%s" content="%s">`+"\n", CSRFMetaName, escapeAttr(page.CSRFToken)); err != nil {
			return err
		}
	}

	for _, meta := range page.Meta {
		if err := renderMetaTag(w, meta); err != nil {
			return err
		}
	}
	for _, link := range page.Links {
		if err := renderLinkTag(w, link); err != nil {
			return err
		}
	}
	for _, href := range page.StyleSheets {
		if _, err := fmt.Fprintf(w, `  <link rel="stylesheet" href="%s">`+"\n", escapeAttr(href)); err != nil {
			return err
		}
	}
	for _, style := range page.Styles {
		if _, err := fmt.Fprintf(w, "  <style>%s</style>\n", style); err != nil {
			return err
		}
	}
	for _, script := range page.Scripts {
		if err := renderScriptTag(w, script); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</head>\n")
	return err
}

// renderMetaTag renders a meta element.
func renderMetaTag(w io.Writer, meta MetaTag) error {
	if _, err := io.WriteString(w, "  <meta"); err != nil {
		return err
	}

	pairs := []struct{ name, value string }{
		{"charset", meta.Charset},
		{"name", meta.Name},
		{"property", meta.Property},
		{"http-equiv", meta.HTTPEquiv},
		{"content", meta.Content},
	}
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, p.name, escapeAttr(p.value)); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, ">\n")
	return err
}

// renderLinkTag renders a link element.
func renderLinkTag(w io.Writer, link LinkTag) error {
	if _, err := io.WriteString(w, "  <link"); err != nil {
		return err
	}

	pairs := []struct{ name, value string }{
		{"rel", link.Rel},
		{"href", link.Href},
		{"type", link.Type},
		{"sizes", link.Sizes},
		{"crossorigin", link.CrossOrigin},
		{"media", link.Media},
	}
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, p.name, escapeAttr(p.value)); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, ">\n")
	return err
}

// renderScriptTag renders a script element.
func renderScriptTag(w io.Writer, script ScriptTag) error {
	if _, err := io.WriteString(w, "  <script"); err != nil {
		return err
	}

	if script.Src != "" {
		if _, err := fmt.Fprintf(w, ` src="%s"`, escapeAttr(script.Src)); err != nil {
			return err
		}
	}
	if script.Module {
		if _, err := io.WriteString(w, ` type="module"`); err != nil {
			return err
		}
	} else if script.Type != "" {
		if _, err := fmt.Fprintf(w, ` type="%s"`, escapeAttr(script.Type)); err != nil {
			return err
		}
	}
	if script.Defer {
		if _, err := io.WriteString(w, " defer"); err != nil {
			return err
		}
	}
	if script.Async {
		if _, err := io.WriteString(w, " async"); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if script.Inline != "" {
		if _, err := io.WriteString(w, script.Inline); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</script>\n")
	return err
}

// renderClientScript injects the thin client script tag.
func (r *Renderer) renderClientScript(w io.Writer, page PageData) error {
	path := page.ClientScript
	if path == "" {
		path = DefaultClientPath
	}
	_, err := fmt.Fprintf(w, `  <script src="%s" defer></script>`+"\n", escapeAttr(path))
	return err
}
