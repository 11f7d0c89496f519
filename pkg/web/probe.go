// Package web covers the outbound side of the flow: checking that a site
// responds before dismissing the loading indicator, and handing URLs to
// the system browser.
package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// DefaultProbeTimeout bounds a single probe.
const DefaultProbeTimeout = 5 * time.Second

// Prober reports whether a site URL can be loaded.
type Prober interface {
	Probe(ctx context.Context, url string) error
}

// HTTPProber probes with a HEAD request. Any response counts as loaded;
// only transport failures are errors.
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber creates a prober whose requests give up after timeout.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &HTTPProber{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: timeout,
				}).DialContext,
			},
		},
	}
}

func (p *HTTPProber) Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", "voteflow")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("probing %s: %w", url, err)
	}
	resp.Body.Close()
	return nil
}
