package event

import (
	"time"

	"github.com/heathj/goevents/dom"
	"github.com/sirupsen/logrus"
)

// Matcher answers the selector questions delegation asks.
type Matcher interface {
	Matches(el *dom.Node, selector string) bool
	QueryAll(root *dom.Node, selector string) []*dom.Node
}

// ReadyNotifier runs fn once its document is ready.
type ReadyNotifier interface {
	Ready(fn func())
}

type focusinReporter interface {
	FocusinSupported() bool
}

type config struct {
	store   *Store
	log     logrus.FieldLogger
	matcher Matcher
	ready   ReadyNotifier
	focusin *bool
	now     func() time.Time
}

type Option func(*config)

// WithStore shares a handler store between engines.
func WithStore(s *Store) Option {
	return func(c *config) {
		if s != nil {
			c.store = s
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMatcher replaces the cascadia backed selector matching.
func WithMatcher(m Matcher) Option {
	return func(c *config) {
		if m != nil {
			c.matcher = m
		}
	}
}

// WithReady sets where "ready" bindings go. Without it the bound element's
// own document is used.
func WithReady(r ReadyNotifier) Option {
	return func(c *config) {
		c.ready = r
	}
}

// WithFocusinSupport overrides detection of focusin/focusout support, which
// otherwise asks the bound element's document.
func WithFocusinSupport(supported bool) Option {
	return func(c *config) {
		c.focusin = &supported
	}
}

// WithClock sets the time source used to back-fill missing time stamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// BindOption adjusts a single binding.
type BindOption func(*bindOptions)

type bindOptions struct {
	selector string
	data     any
	capture  bool
	once     bool
}

// Selector delegates the binding: the handler runs for descendants of the
// bound element matching selector, with this set to the match.
func Selector(selector string) BindOption {
	return func(o *bindOptions) { o.selector = selector }
}

// Data attaches a value handlers read with Event.Data.
func Data(v any) BindOption {
	return func(o *bindOptions) { o.data = v }
}

// Capture listens in the capture phase.
func Capture() BindOption {
	return func(o *bindOptions) { o.capture = true }
}

func bindConfig(opts []BindOption) bindOptions {
	var o bindOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type domMatcher struct {
	log logrus.FieldLogger
}

func (m domMatcher) Matches(el *dom.Node, selector string) bool {
	ok, err := el.Matches(selector)
	if err != nil {
		m.log.WithField("method", "Matches").WithError(err).Warn("[EVENT]: bad selector")
		return false
	}
	return ok
}

func (m domMatcher) QueryAll(root *dom.Node, selector string) []*dom.Node {
	nl, err := root.QuerySelectorAll(selector)
	if err != nil {
		m.log.WithField("method", "QueryAll").WithError(err).Warn("[EVENT]: bad selector")
		return nil
	}
	return nl
}
