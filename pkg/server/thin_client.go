package server

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	clientdist "github.com/marquee-dev/marquee/client/dist"
)

// thinClientETag is computed once from the embedded script.
var thinClientETag = fmt.Sprintf(`"%x"`, sha256.Sum256(clientdist.MarqueeJS))

// ClientHandler returns an http.Handler serving the embedded client
// script. The application mounts it at render.DefaultClientPath.
func (s *Server) ClientHandler() http.Handler {
	return http.HandlerFunc(s.serveThinClient)
}

func (s *Server) serveThinClient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	js := clientdist.MarqueeJS
	if len(js) == 0 {
		s.logger.Error("embedded client script is empty")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("ETag", thinClientETag)
	if s.config.DevMode {
		w.Header().Set("Cache-Control", "no-store")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=0, must-revalidate")
	}

	if etagMatches(r.Header.Get("If-None-Match"), thinClientETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Length", strconv.Itoa(len(js)))
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(js)
}

// etagMatches implements If-None-Match comparison, including weak tags
// and the wildcard.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	if header == "*" {
		return true
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == etag {
			return true
		}
	}
	return false
}
