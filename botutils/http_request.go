package botutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gojektech/heimdall/v6"
	"github.com/gojektech/heimdall/v6/httpclient"
	"github.com/golangid/botkit/tracer"
)

type (
	// HTTPRequest interface
	HTTPRequest interface {
		Do(ctx context.Context, method, url string, reqBody []byte, headers map[string]string) ([]byte, error)
	}

	// HTTPRequestOption for setup http request
	HTTPRequestOption func(*httpRequestImpl)

	httpRequestImpl struct {
		client            *httpclient.Client
		doer              heimdall.Doer
		retries           int
		sleepBetweenRetry time.Duration
		timeout           time.Duration
		minHTTPErrorCode  int
	}
)

// HTTPError returned when the response status reach the error code threshold
type HTTPError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// HTTPRequestSetRetries option func
func HTTPRequestSetRetries(retries int) HTTPRequestOption {
	return func(h *httpRequestImpl) {
		h.retries = retries
	}
}

// HTTPRequestSetSleepBetweenRetry option func
func HTTPRequestSetSleepBetweenRetry(sleepBetweenRetry time.Duration) HTTPRequestOption {
	return func(h *httpRequestImpl) {
		h.sleepBetweenRetry = sleepBetweenRetry
	}
}

// HTTPRequestSetHTTPErrorCodeThreshold option func
func HTTPRequestSetHTTPErrorCodeThreshold(minHTTPStatusCode int) HTTPRequestOption {
	return func(h *httpRequestImpl) {
		h.minHTTPErrorCode = minHTTPStatusCode
	}
}

// HTTPRequestSetTimeout option func
func HTTPRequestSetTimeout(timeout time.Duration) HTTPRequestOption {
	return func(h *httpRequestImpl) {
		h.timeout = timeout
	}
}

// HTTPRequestSetDoer option func, replace the underlying http client
func HTTPRequestSetDoer(doer heimdall.Doer) HTTPRequestOption {
	return func(h *httpRequestImpl) {
		h.doer = doer
	}
}

// NewHTTPRequest create new http request client with retrier
func NewHTTPRequest(opts ...HTTPRequestOption) HTTPRequest {
	httpReq := &httpRequestImpl{
		retries:           3,
		sleepBetweenRetry: 500 * time.Millisecond,
		timeout:           10 * time.Second,
		minHTTPErrorCode:  http.StatusBadRequest,
	}
	for _, opt := range opts {
		opt(httpReq)
	}

	backoff := heimdall.NewConstantBackoff(httpReq.sleepBetweenRetry, 5*time.Millisecond)
	clientOpts := []httpclient.Option{
		httpclient.WithHTTPTimeout(httpReq.timeout),
		httpclient.WithRetrier(heimdall.NewRetrier(backoff)),
		httpclient.WithRetryCount(httpReq.retries),
	}
	if httpReq.doer != nil {
		clientOpts = append(clientOpts, httpclient.WithHTTPClient(httpReq.doer))
	}
	httpReq.client = httpclient.NewClient(clientOpts...)
	return httpReq
}

// Do http request, response with status code at or above the threshold return *HTTPError
func (h *httpRequestImpl) Do(ctx context.Context, method, url string, requestBody []byte, headers map[string]string) (respBody []byte, err error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(requestBody))
	if err != nil {
		return nil, err
	}

	trace := tracer.StartTrace(ctx, fmt.Sprintf("HTTP Request: %s %s%s", method, req.URL.Host, req.URL.Path))
	defer func() {
		trace.SetError(err)
		trace.Finish()
	}()

	if headers == nil {
		headers = map[string]string{}
	}
	trace.InjectRequestHeader(headers)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	tags := trace.Tags()
	tags["http.headers"] = req.Header
	tags["http.method"] = req.Method
	tags["http.url"] = req.URL.String()
	if requestBody != nil {
		tags["request.body"] = string(requestBody)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	tags["response.body"] = string(respBody)
	tags["response.code"] = resp.StatusCode

	if resp.StatusCode >= h.minHTTPErrorCode {
		httpErr := &HTTPError{StatusCode: resp.StatusCode, Body: respBody}
		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &msg) == nil {
			httpErr.Message = msg.Message
		}
		return respBody, httpErr
	}
	return respBody, nil
}
