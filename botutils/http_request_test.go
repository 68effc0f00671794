package botutils

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
)

func TestNewRequest(t *testing.T) {
	request := NewHTTPRequest(
		HTTPRequestSetRetries(1),
		HTTPRequestSetSleepBetweenRetry(500*time.Millisecond),
		HTTPRequestSetHTTPErrorCodeThreshold(http.StatusBadRequest),
	)
	assert.NotNil(t, request)
}

func TestRequestDo(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	urlMock := "http://bots.example.com/api/rtm/start"

	testCase := map[string]struct {
		wantError  bool
		wantStatus int
		code       int
		method     string
		body       []byte
		response   interface{}
	}{
		"Test #1 positive http request do": {
			code:     http.StatusOK,
			method:   http.MethodPost,
			body:     []byte(`{"botInfo":{}}`),
			response: map[string]interface{}{"url": "wss://rtm"},
		},
		"Test #2 negative unauthorized with message": {
			wantError:  true,
			wantStatus: http.StatusUnauthorized,
			code:       http.StatusUnauthorized,
			method:     http.MethodGet,
			response:   map[string]interface{}{"message": "token expired"},
		},
	}

	for name, test := range testCase {
		t.Run(name, func(t *testing.T) {
			httpmock.Reset()
			httpmock.RegisterResponder(test.method, urlMock,
				httpmock.NewJsonResponderOrPanic(test.code, test.response))

			request := NewHTTPRequest(
				HTTPRequestSetRetries(0),
				HTTPRequestSetSleepBetweenRetry(10*time.Millisecond),
				HTTPRequestSetTimeout(5*time.Second),
			)

			resp, err := request.Do(context.Background(), test.method, urlMock, test.body,
				map[string]string{"Content-Type": "application/json"})
			if test.wantError {
				assert.Error(t, err)
				var httpErr *HTTPError
				assert.True(t, errors.As(err, &httpErr))
				assert.Equal(t, test.wantStatus, httpErr.StatusCode)
				assert.Contains(t, httpErr.Error(), "token expired")
				return
			}
			assert.NoError(t, err)
			assert.JSONEq(t, `{"url":"wss://rtm"}`, string(resp))
		})
	}
}
