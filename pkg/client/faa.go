package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// CodePlaceholder is substituted with the airport code in endpoint templates.
const CodePlaceholder = "{code}"

// DefaultFAAEndpoints are tried in order: the FAA service directly, then two
// public CORS mirrors of the same resource.
var DefaultFAAEndpoints = []string{
	"https://services.faa.gov/airport/status/{code}?format=application/json",
	"https://cors.isomorphic-git.org/https://services.faa.gov/airport/status/{code}?format=application/json",
	"https://thingproxy.freeboard.io/fetch/https://services.faa.gov/airport/status/{code}?format=application/json",
}

// FAAStatusClient resolves one airport's status document from a single
// endpoint template, with a circuit breaker per airport URL.
type FAAStatusClient struct {
	*BaseClient
	name     string
	template string
}

func NewFAAStatusClient(template string, config ClientConfig, logger *zap.Logger) *FAAStatusClient {
	name := endpointName(template)
	return &FAAStatusClient{
		BaseClient: NewBaseClient(name, config, logger),
		name:       name,
		template:   template,
	}
}

// NewFAAStatusClients builds one client per template, preserving order.
func NewFAAStatusClients(templates []string, config ClientConfig, logger *zap.Logger) []*FAAStatusClient {
	clients := make([]*FAAStatusClient, 0, len(templates))
	for _, tmpl := range templates {
		tmpl = strings.TrimSpace(tmpl)
		if tmpl == "" {
			continue
		}
		clients = append(clients, NewFAAStatusClient(tmpl, config, logger))
	}
	return clients
}

func (c *FAAStatusClient) Name() string {
	return c.name
}

func (c *FAAStatusClient) URL(code string) string {
	return strings.ReplaceAll(c.template, CodePlaceholder, url.PathEscape(code))
}

// Resolve fetches and decodes the status document. The decoded value is
// untrusted; numbers are kept as json.Number.
func (c *FAAStatusClient) Resolve(ctx context.Context, code string) (any, error) {
	data, err := c.GetWithRetry(ctx, c.URL(code))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch status for %s: %w", code, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse status for %s: %w", code, err)
	}
	if _, ok := payload.(map[string]any); !ok {
		return nil, fmt.Errorf("unexpected status document for %s", code)
	}
	return payload, nil
}

func endpointName(template string) string {
	u, err := url.Parse(strings.ReplaceAll(template, CodePlaceholder, "XXX"))
	if err != nil || u.Host == "" {
		return template
	}
	return u.Host
}
