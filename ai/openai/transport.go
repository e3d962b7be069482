package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

type webSearchKey struct{}

func withWebSearchDisabled(ctx context.Context) context.Context {
	return context.WithValue(ctx, webSearchKey{}, true)
}

func webSearchDisabled(ctx context.Context) bool {
	v, _ := ctx.Value(webSearchKey{}).(bool)
	return v
}

// searchOptionsTransport adds the Perplexity search controls to the request body
// when the call context asks for web search to be off. The langchaingo client has
// no way to send these provider-specific fields.
type searchOptionsTransport struct {
	base http.RoundTripper
}

func newSearchOptionsTransport(base http.RoundTripper) *searchOptionsTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &searchOptionsTransport{base: base}
}

func (t *searchOptionsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodPost || req.Body == nil || !webSearchDisabled(req.Context()) {
		return t.base.RoundTrip(req)
	}

	raw, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return nil, err
	}

	body, err := disableWebSearch(raw)
	if err != nil {
		// Not a JSON object, send it untouched.
		body = raw
	}

	out := req.Clone(req.Context())
	out.Body = io.NopCloser(bytes.NewReader(body))
	out.ContentLength = int64(len(body))
	out.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
	return t.base.RoundTrip(out)
}

func disableWebSearch(raw []byte) ([]byte, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	payload["search_domain_filter"] = []string{}
	payload["web_search"] = false
	payload["return_images"] = false
	payload["return_related_questions"] = false
	return json.Marshal(payload)
}
