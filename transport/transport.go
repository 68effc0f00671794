package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/golangid/botkit/bothelper"
	"github.com/golangid/botkit/botutils"
	"github.com/golangid/botkit/message"
)

// api paths relative to the bot server url
const (
	PathJWTGrant        = "/api/oAuth/token/jwtgrant"
	PathRTMStart        = "/api/rtm/start"
	PathHistory         = "/api/botmessages/rtm"
	PathSubscribeFmt    = "/api/users/%s/sdknotifications/subscribe"
	PathUnsubscribeFmt  = "/api/users/%s/sdknotifications/unsubscribe"
	DefaultHistoryLimit = 100

	osType = "ios"
)

var (
	// ErrEmptyDeviceToken subscribe or unsubscribe without a device token
	ErrEmptyDeviceToken = errors.New("transport: device token is empty")
	// ErrUnexpectedResponse response body is not the expected json object
	ErrUnexpectedResponse = errors.New("transport: unexpected response")
)

type (
	// User signed in user
	User struct {
		UserID    string `json:"userId"`
		Identity  string `json:"identity,omitempty"`
		FirstName string `json:"firstName,omitempty"`
		LastName  string `json:"lastName,omitempty"`
		OrgID     string `json:"orgId,omitempty"`
	}

	// AuthInfo authorization of the signed in user
	AuthInfo struct {
		TokenType    string `json:"token_type"`
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken,omitempty"`
		ExpiresDate  string `json:"expiresDate,omitempty"`
	}

	// RTMEndpoint websocket url of a rtm session
	RTMEndpoint struct {
		URL string `json:"url"`
	}
)

// Header value of the Authorization header
func (a *AuthInfo) Header() string {
	return a.TokenType + " " + a.AccessToken
}

// Client bot platform rest api
type Client struct {
	baseURL      string
	request      botutils.HTTPRequest
	historyLimit int
}

// Option client option
type Option func(*Client)

// SetHistoryLimit option, page size of GetHistory
func SetHistoryLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.historyLimit = limit
		}
	}
}

// NewClient baseURL without trailing slash, request carry the retry policy
func NewClient(baseURL string, request botutils.HTTPRequest, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		request:      request,
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SignIn exchange the jwt assertion for the user and its authorization
func (c *Client) SignIn(ctx context.Context, assertion string, botInfo message.BotInfo) (*User, *AuthInfo, error) {
	body := map[string]interface{}{
		"assertion": assertion,
		"botInfo":   botInfo,
	}
	var resp struct {
		Authorization *AuthInfo `json:"authorization"`
		UserInfo      *User     `json:"userInfo"`
	}
	if err := c.call(ctx, http.MethodPost, c.baseURL+PathJWTGrant, body, nil, &resp); err != nil {
		return nil, nil, fmt.Errorf("sign in: %w", err)
	}
	if resp.Authorization == nil || resp.UserInfo == nil {
		return nil, nil, fmt.Errorf("sign in: %w: missing authorization or userInfo", ErrUnexpectedResponse)
	}
	return resp.UserInfo, resp.Authorization, nil
}

// GetRTMEndpoint start a rtm session
func (c *Client) GetRTMEndpoint(ctx context.Context, auth *AuthInfo, botInfo message.BotInfo) (*RTMEndpoint, error) {
	body := map[string]interface{}{
		"botInfo":       botInfo,
		"authorization": auth.Header(),
	}
	var endpoint RTMEndpoint
	if err := c.call(ctx, http.MethodPost, c.baseURL+PathRTMStart, body, auth, &endpoint); err != nil {
		return nil, fmt.Errorf("rtm start: %w", err)
	}
	if endpoint.URL == "" {
		return nil, fmt.Errorf("rtm start: %w: empty url", ErrUnexpectedResponse)
	}
	return &endpoint, nil
}

// GetHistory messages after messageID, empty messageID start from the oldest
func (c *Client) GetHistory(ctx context.Context, messageID string, auth *AuthInfo, botInfo message.BotInfo) (*message.HistoryPage, error) {
	query := url.Values{}
	query.Set("botId", botInfo.TaskBotID)
	query.Set("msgId", messageID)
	query.Set("forward", "true")
	query.Set("limit", strconv.Itoa(c.historyLimit))

	var page message.HistoryPage
	if err := c.call(ctx, http.MethodGet, c.baseURL+PathHistory+"?"+query.Encode(), nil, auth, &page); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return &page, nil
}

// Subscribe register deviceToken for push notifications
func (c *Client) Subscribe(ctx context.Context, deviceToken []byte, user *User, auth *AuthInfo) error {
	if len(deviceToken) == 0 {
		return ErrEmptyDeviceToken
	}
	body := map[string]string{
		"deviceId": bothelper.HexString(deviceToken),
		"osType":   osType,
	}
	if err := c.call(ctx, http.MethodPost, c.baseURL+fmt.Sprintf(PathSubscribeFmt, user.UserID), body, auth, nil); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	return nil
}

// Unsubscribe remove deviceToken from push notifications
func (c *Client) Unsubscribe(ctx context.Context, deviceToken []byte, user *User, auth *AuthInfo) error {
	if len(deviceToken) == 0 {
		return ErrEmptyDeviceToken
	}
	body := map[string]string{
		"deviceId": bothelper.HexString(deviceToken),
	}
	if err := c.call(ctx, http.MethodDelete, c.baseURL+fmt.Sprintf(PathUnsubscribeFmt, user.UserID), body, auth, nil); err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, method, url string, body interface{}, auth *AuthInfo, out interface{}) error {
	headers := map[string]string{
		"Connection":   "Keep-Alive",
		"Content-Type": "application/json",
	}
	if auth != nil {
		headers["Authorization"] = auth.Header()
	}

	var reqBody []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = b
	}

	respBody, err := c.request.Do(ctx, method, url, reqBody, headers)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return nil
}
