package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/opbop/opbop/internal/cache"
	"github.com/opbop/opbop/internal/model"
	"github.com/opbop/opbop/internal/prefs"
	"github.com/opbop/opbop/internal/request"
)

// Service runs the full parse flow for one URL: read preferences, build the
// payload, consult the cache or call the service, then re-read preferences
// so display decisions use the snapshot at response arrival, not at send
// time.
type Service struct {
	client *Client
	prefs  *prefs.Manager
	cache  *cache.ResponseCache
	log    *slog.Logger
}

// NewService wires the parse flow together. cache may be nil.
func NewService(c *Client, manager *prefs.Manager, responseCache *cache.ResponseCache, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{client: c, prefs: manager, cache: responseCache, log: log}
}

// Outcome is the result of one parse: the response plus the preference
// snapshot taken when it arrived.
type Outcome struct {
	Response  *model.ResponsePayload
	Prefs     model.Preferences
	FromCache bool
}

// ParseURL fetches the condensed article for one URL.
func (s *Service) ParseURL(ctx context.Context, rawURL string) (*Outcome, error) {
	p, err := s.prefs.Load(ctx)
	if err != nil {
		return nil, err
	}

	payload := request.Build(rawURL, p)
	s.log.Debug("parse request built",
		"url", rawURL,
		"filterExplicit", payload.FilterExplicit,
		"blacklisted", len(payload.Blacklist),
		"dateFiltered", payload.ArticleRange != nil)

	resp, fromCache := s.cache.Lookup(rawURL)
	if fromCache {
		s.log.Debug("cache hit", "url", rawURL)
	} else {
		resp, err = s.client.Parse(ctx, payload)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", rawURL, err)
		}
		s.cache.Store(rawURL, resp)
	}

	// Preferences may have changed while the request was in flight. The
	// warning and censorship decisions are about what to show now, so the
	// snapshot is taken at response arrival.
	arrival, err := s.prefs.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &Outcome{Response: resp, Prefs: arrival, FromCache: fromCache}, nil
}
