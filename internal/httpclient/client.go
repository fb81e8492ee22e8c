package httpclient

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTransport is the base transport used by the instrumented client.
var DefaultTransport = http.DefaultTransport

type contextKey string

const layerKey contextKey = "httpclient.layer"

// WithLayer tags outgoing requests made with ctx with the extractor layer name.
func WithLayer(ctx context.Context, layer string) context.Context {
	return context.WithValue(ctx, layerKey, layer)
}

// layerTransport adds the extractor layer to the current span.
type layerTransport struct {
	base http.RoundTripper
}

func (t *layerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	span := trace.SpanFromContext(req.Context())
	if layer, ok := req.Context().Value(layerKey).(string); ok {
		span.SetAttributes(attribute.String("recipe.layer", layer))
	}
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP status %d", resp.StatusCode))
	}
	return resp, nil
}

// browserTransport sets browser-like request headers unless the caller set them.
type browserTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *browserTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	}
	if req.Header.Get("Accept-Language") == "" {
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	}
	return t.base.RoundTrip(req)
}

// DialControl inspects every outgoing connection after name resolution and
// may refuse it. It runs for redirects too.
type DialControl func(network, address string, c syscall.RawConn) error

type options struct {
	control DialControl
}

type Option func(*options)

// WithDialControl installs fn on the dialer of the underlying transport.
func WithDialControl(fn DialControl) Option {
	return func(o *options) {
		o.control = fn
	}
}

func baseTransport(o options) http.RoundTripper {
	if o.control == nil {
		return DefaultTransport
	}
	t, ok := DefaultTransport.(*http.Transport)
	if !ok {
		t = http.DefaultTransport.(*http.Transport)
	}
	t = t.Clone()
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
		Control:   o.control,
	}
	t.DialContext = dialer.DialContext
	t.Proxy = nil
	return t
}

// NewTransport returns an instrumented transport presenting the given User-Agent.
func NewTransport(userAgent string, opts ...Option) http.RoundTripper {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return otelhttp.NewTransport(
		&layerTransport{base: &browserTransport{base: baseTransport(o), userAgent: userAgent}},
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			layer, _ := r.Context().Value(layerKey).(string)
			if layer != "" {
				return fmt.Sprintf("%s: %s %s", layer, r.Method, r.URL.Host)
			}
			return fmt.Sprintf("%s %s", r.Method, r.URL.Host)
		}),
	)
}

// NewInstrumentedClient returns an http.Client with OpenTelemetry instrumentation,
// browser headers and the given timeout.
func NewInstrumentedClient(userAgent string, timeout time.Duration, opts ...Option) *http.Client {
	return &http.Client{
		Transport: NewTransport(userAgent, opts...),
		Timeout:   timeout,
	}
}
