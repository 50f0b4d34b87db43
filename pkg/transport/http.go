package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/soapbind-project/soapbind-go/pkg/logger"
	"github.com/soapbind-project/soapbind-go/pkg/soap"
)

// DefaultTimeout is the default HTTP request timeout
const DefaultTimeout = 30 * time.Second

// HTTPTransport posts envelopes over HTTP
type HTTPTransport struct {
	client  *http.Client
	headers map[string]string
}

// NewHTTPTransport creates a transport with the default timeout
func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetClient replaces the underlying HTTP client
func (t *HTTPTransport) SetClient(client *http.Client) {
	t.client = client
}

// SetTimeout sets the request timeout on the underlying client
func (t *HTTPTransport) SetTimeout(timeout time.Duration) {
	t.client.Timeout = timeout
}

// SetHeader adds a header to every outgoing request
func (t *HTTPTransport) SetHeader(name, value string) {
	if t.headers == nil {
		t.headers = make(map[string]string)
	}
	t.headers[name] = value
}

// Call posts the envelope and returns the raw reply. Replies with status
// 200 or 500 are returned for envelope parsing; faults arrive as 500 with
// an envelope body. Any other status yields a StatusError.
func (t *HTTPTransport) Call(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.Endpoint, bytes.NewReader(req.Envelope))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", req.Version.ContentType(req.Action))
	if req.Version != soap.SOAP12 {
		httpReq.Header.Set("SOAPAction", quoteAction(req.Action))
	}
	for name, value := range t.headers {
		httpReq.Header.Set(name, value)
	}

	logger.Debugf("calling %s (SOAP %s, action %q)", req.Endpoint, req.Version, req.Action)

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	logger.Tracef("received %d bytes from %s (status %d)", len(body), req.Endpoint, resp.StatusCode)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusInternalServerError {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// quoteAction wraps the action in double quotes as the SOAPAction header
// requires. An empty action becomes the empty quoted string.
func quoteAction(action string) string {
	if strings.HasPrefix(action, `"`) && strings.HasSuffix(action, `"`) && len(action) >= 2 {
		return action
	}
	return `"` + action + `"`
}
