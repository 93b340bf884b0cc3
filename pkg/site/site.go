package site

import (
	"context"
	"log/slog"

	"github.com/marquee-dev/marquee/pkg/bind"
	"github.com/marquee-dev/marquee/pkg/vdom"
)

// DefaultName is the brand shown when no name is configured.
const DefaultName = "Marquee Studio"

// Site builds the stock page. Construct with New.
type Site struct {
	name   string
	logger *slog.Logger
}

// Option configures a Site.
type Option func(*Site)

// WithName sets the brand name shown in the header and footer.
func WithName(name string) Option {
	return func(s *Site) {
		if name != "" {
			s.name = name
		}
	}
}

// WithLogger sets the logger used for behavior setup diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Site) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates the stock site.
func New(opts ...Option) *Site {
	s := &Site{
		name:   DefaultName,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "site")
	return s
}

// Title returns the document title.
func (s *Site) Title() string {
	return s.name + " | Web design and development"
}

// Description returns the meta description.
func (s *Site) Description() string {
	return "We design, build, and launch marketing sites for small teams."
}

// Page builds the page body and wires the behavior set onto it. The
// stock site serves the same page for every path, so path is ignored.
// Each call returns a new tree with its own handler closures.
func (s *Site) Page(path string) (*vdom.VNode, error) {
	page := s.build()
	if _, err := bind.Apply(context.Background(), page, s.logger); err != nil {
		return nil, err
	}
	return page, nil
}
