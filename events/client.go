package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// DefaultBaseURL is the production ingestion endpoint for the Events API v2.
const DefaultBaseURL = "https://events.pagerduty.com/v2/"

// Transport issues a single outbound HTTP request. *http.Client satisfies it.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client sends events to one PagerDuty service, identified by its Events API
// v2 integration (routing) key. Create one Client per service. Safe for
// concurrent sends.
//
// Unless a custom Transport is supplied with SetTransport, the Client lazily
// creates and exclusively owns an *http.Client; call Close when done so its
// idle connections are released.
type Client struct {
	routingKey string

	mu              sync.Mutex
	baseURL         *url.URL
	custom          Transport
	builtIn         *http.Client
	builtInReleased bool
}

// NewClient creates a client for the service identified by routingKey, the
// "Integration Key" on the Events API v2 integration's detail page. The base
// URL defaults to DefaultBaseURL.
func NewClient(routingKey string) *Client {
	base, _ := url.Parse(DefaultBaseURL)
	return &Client{
		routingKey: routingKey,
		baseURL:    base,
	}
}

// SetBaseURL overrides the destination the client sends events to, for
// proxies or test servers. The URL must be absolute with an http or https
// scheme; a trailing slash is appended to the path if missing. Validation
// happens here, not at send time.
func (c *Client) SetBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("base URL %q must be an absolute http or https URL", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	// A representative relative path must resolve against the new base.
	if _, err := u.Parse(alertPath); err != nil {
		return fmt.Errorf("base URL %q does not accept relative paths: %w", raw, err)
	}

	c.mu.Lock()
	c.baseURL = u
	c.mu.Unlock()
	return nil
}

// BaseURL returns the currently configured base URL.
func (c *Client) BaseURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.baseURL.String()
}

// SetTransport replaces the outbound transport with a caller-supplied one,
// which the client will never release. If the built-in transport had already
// been created, its idle connections are released exactly once, even if the
// transport is swapped repeatedly. Passing the built-in *http.Client back
// reinstates it.
func (c *Client) SetTransport(t Transport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.builtIn != nil && t == Transport(c.builtIn) {
		c.custom = nil
		return
	}
	c.releaseBuiltInLocked()
	c.custom = t
}

// Close releases the built-in transport, if one was created and is still
// owned. Idempotent. A transport supplied via SetTransport is untouched.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseBuiltInLocked()
}

func (c *Client) releaseBuiltInLocked() {
	if c.builtIn != nil && !c.builtInReleased {
		c.builtIn.CloseIdleConnections()
		c.builtInReleased = true
	}
}

func (c *Client) transport() Transport {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.custom != nil {
		return c.custom
	}
	if c.builtIn == nil {
		c.builtIn = &http.Client{}
	}
	return c.builtIn
}

// SendAlert submits a trigger, acknowledge, or resolve event. The alert's
// routing key is overwritten with the client's configured key. On success the
// response carries the dedup key correlating the alert's lifecycle; on
// failure the error is a *NetworkError or one of the typed status errors
// (see Retryable).
func (c *Client) SendAlert(ctx context.Context, alert Alert) (*AlertResponse, error) {
	var resp AlertResponse
	if err := c.send(ctx, alert, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendChange submits a change event. The change's routing key is overwritten
// with the client's configured key.
func (c *Client) SendChange(ctx context.Context, change *Change) (*EventResponse, error) {
	var resp EventResponse
	if err := c.send(ctx, change, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) send(ctx context.Context, event Event, out any) error {
	event.setRoutingKey(c.routingKey)

	rel, err := url.Parse(event.apiPath())
	if err != nil {
		return fmt.Errorf("invalid event path %q: %w", event.apiPath(), err)
	}
	c.mu.Lock()
	uri := c.baseURL.ResolveReference(rel).String()
	c.mu.Unlock()

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializing event for %s: %w", uri, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request for %s: %w", uri, err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	res, err := c.transport().Do(req)
	if err != nil {
		return &NetworkError{URL: uri, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusAccepted {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response from %s: %w", uri, err)
		}
		return nil
	}

	text, _ := io.ReadAll(res.Body)
	return classifyStatus(res.StatusCode, uri, string(text))
}
