package liblogger

import (
	"sync/atomic"
	"time"

	"github.com/valyala/fasthttp"
)

// HTTPSink posts each record as a JSON object to a collector endpoint.
// fasthttp.Client is safe for concurrent use, so no extra locking is needed.
type HTTPSink struct {
	client   *fasthttp.Client
	endpoint string
	timeout  time.Duration
	closed   atomic.Bool
}

// NewHTTPSink validates the endpoint and prepares a reusable client
func NewHTTPSink(endpoint string, timeout time.Duration) (*HTTPSink, error) {
	uri := fasthttp.AcquireURI()
	defer fasthttp.ReleaseURI(uri)
	if err := uri.Parse(nil, []byte(endpoint)); err != nil {
		return nil, fmtErrorf("invalid http endpoint '%s': %w", endpoint, err)
	}
	scheme := string(uri.Scheme())
	if scheme != "http" && scheme != "https" {
		return nil, fmtErrorf("invalid http endpoint '%s': unsupported scheme '%s'", endpoint, scheme)
	}
	if len(uri.Host()) == 0 {
		return nil, fmtErrorf("invalid http endpoint '%s': missing host", endpoint)
	}

	return &HTTPSink{
		client: &fasthttp.Client{
			Name:         "liblogger",
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		endpoint: endpoint,
		timeout:  timeout,
	}, nil
}

// Write sends one record and waits for the response up to the configured timeout.
// Any non-2xx status is reported as an error.
func (s *HTTPSink) Write(r Record) error {
	if s.closed.Load() {
		return fmtErrorf("http sink closed")
	}

	body, err := formatJSON(r)
	if err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBodyRaw(body)

	if err := s.client.DoTimeout(req, resp, s.timeout); err != nil {
		return fmtErrorf("failed to post record to '%s': %w", s.endpoint, err)
	}

	if code := resp.StatusCode(); code < fasthttp.StatusOK || code >= fasthttp.StatusMultipleChoices {
		return fmtErrorf("collector '%s' responded with status %d", s.endpoint, code)
	}
	return nil
}

// Close releases idle connections
func (s *HTTPSink) Close() error {
	if s.closed.CompareAndSwap(false, true) {
		s.client.CloseIdleConnections()
	}
	return nil
}
