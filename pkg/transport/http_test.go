package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soapbind-project/soapbind-go/pkg/soap"
)

const replyEnvelope = `<?xml version="1.0" encoding="UTF-8"?>
<Envelope xmlns="http://schemas.xmlsoap.org/soap/envelope/"><Body/></Envelope>`

// capturedRequest records what the test server received
type capturedRequest struct {
	method      string
	contentType string
	soapAction  string
	headers     http.Header
	body        []byte
}

func newTestServer(t *testing.T, status int, reply string) (*httptest.Server, *capturedRequest) {
	t.Helper()

	captured := &capturedRequest{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.contentType = r.Header.Get("Content-Type")
		captured.soapAction = r.Header.Get("SOAPAction")
		captured.headers = r.Header.Clone()
		captured.body, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(ts.Close)
	return ts, captured
}

func TestCall_SOAP11(t *testing.T) {
	ts, captured := newTestServer(t, http.StatusOK, replyEnvelope)

	transport := NewHTTPTransport()
	resp, err := transport.Call(context.Background(), &Request{
		Endpoint: ts.URL,
		Version:  soap.SOAP11,
		Action:   "urn:getPet",
		Envelope: []byte("<Envelope/>"),
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "text/xml; charset=utf-8", captured.contentType)
	assert.Equal(t, `"urn:getPet"`, captured.soapAction)
	assert.Equal(t, []byte("<Envelope/>"), captured.body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/xml; charset=utf-8", resp.ContentType)
	assert.Equal(t, []byte(replyEnvelope), resp.Body)
}

func TestCall_SOAP12ActionInContentType(t *testing.T) {
	ts, captured := newTestServer(t, http.StatusOK, replyEnvelope)

	transport := NewHTTPTransport()
	_, err := transport.Call(context.Background(), &Request{
		Endpoint: ts.URL,
		Version:  soap.SOAP12,
		Action:   "urn:getPet",
		Envelope: []byte("<Envelope/>"),
	})
	require.NoError(t, err)

	assert.Contains(t, captured.contentType, "application/soap+xml")
	assert.Contains(t, captured.contentType, `action="urn:getPet"`)
	assert.Empty(t, captured.soapAction)
}

func TestCall_EmptyActionIsQuoted(t *testing.T) {
	ts, captured := newTestServer(t, http.StatusOK, replyEnvelope)

	transport := NewHTTPTransport()
	_, err := transport.Call(context.Background(), &Request{
		Endpoint: ts.URL,
		Version:  soap.SOAP11,
		Envelope: []byte("<Envelope/>"),
	})
	require.NoError(t, err)

	assert.Equal(t, `""`, captured.soapAction)
}

func TestCall_FaultStatusReturnsResponse(t *testing.T) {
	ts, _ := newTestServer(t, http.StatusInternalServerError, replyEnvelope)

	transport := NewHTTPTransport()
	resp, err := transport.Call(context.Background(), &Request{
		Endpoint: ts.URL,
		Version:  soap.SOAP11,
		Envelope: []byte("<Envelope/>"),
	})
	require.NoError(t, err, "status 500 should return the body for fault parsing")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, []byte(replyEnvelope), resp.Body)
}

func TestCall_UnexpectedStatus(t *testing.T) {
	ts, _ := newTestServer(t, http.StatusNotFound, "not here")

	transport := NewHTTPTransport()
	_, err := transport.Call(context.Background(), &Request{
		Endpoint: ts.URL,
		Version:  soap.SOAP11,
		Envelope: []byte("<Envelope/>"),
	})
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, []byte("not here"), statusErr.Body)
	assert.Contains(t, err.Error(), "404")
}

func TestCall_CustomHeaders(t *testing.T) {
	ts, captured := newTestServer(t, http.StatusOK, replyEnvelope)

	transport := NewHTTPTransport()
	transport.SetHeader("Authorization", "Bearer token123")
	_, err := transport.Call(context.Background(), &Request{
		Endpoint: ts.URL,
		Version:  soap.SOAP11,
		Envelope: []byte("<Envelope/>"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer token123", captured.headers.Get("Authorization"))
}

func TestCall_ContextCancelled(t *testing.T) {
	ts, _ := newTestServer(t, http.StatusOK, replyEnvelope)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transport := NewHTTPTransport()
	_, err := transport.Call(ctx, &Request{
		Endpoint: ts.URL,
		Version:  soap.SOAP11,
		Envelope: []byte("<Envelope/>"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCall_InvalidEndpoint(t *testing.T) {
	transport := NewHTTPTransport()
	transport.SetTimeout(time.Second)

	_, err := transport.Call(context.Background(), &Request{
		Endpoint: "http://127.0.0.1:1/soap",
		Version:  soap.SOAP11,
		Envelope: []byte("<Envelope/>"),
	})
	assert.Error(t, err)
}

func TestQuoteAction(t *testing.T) {
	tests := []struct {
		name     string
		action   string
		expected string
	}{
		{name: "empty", action: "", expected: `""`},
		{name: "bare", action: "urn:getPet", expected: `"urn:getPet"`},
		{name: "already quoted", action: `"urn:getPet"`, expected: `"urn:getPet"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, quoteAction(tt.action))
		})
	}
}
