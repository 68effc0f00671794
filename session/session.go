package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golangid/botkit/botutils"
	"github.com/golangid/botkit/cache"
	"github.com/golangid/botkit/codebase/interfaces"
	"github.com/golangid/botkit/message"
	"github.com/golangid/botkit/rtm"
	"github.com/golangid/botkit/store"
	"github.com/golangid/botkit/transport"
)

var (
	// ErrNotConnected operation need Connect first
	ErrNotConnected = errors.New("session: not connected")
	// ErrNotAuthenticated operation need a signed in user
	ErrNotAuthenticated = errors.New("session: not authenticated")
	// ErrEmptyText send of blank text
	ErrEmptyText = errors.New("session: text is empty")
	// ErrUnknownAction action type not handled
	ErrUnknownAction = errors.New("session: unknown action")
	// ErrClosed session already closed
	ErrClosed = errors.New("session: closed")
)

// API bot platform rest calls used by a session, implemented by *transport.Client
type API interface {
	SignIn(ctx context.Context, assertion string, botInfo message.BotInfo) (*transport.User, *transport.AuthInfo, error)
	GetRTMEndpoint(ctx context.Context, auth *transport.AuthInfo, botInfo message.BotInfo) (*transport.RTMEndpoint, error)
	GetHistory(ctx context.Context, messageID string, auth *transport.AuthInfo, botInfo message.BotInfo) (*message.HistoryPage, error)
	Subscribe(ctx context.Context, deviceToken []byte, user *transport.User, auth *transport.AuthInfo) error
	Unsubscribe(ctx context.Context, deviceToken []byte, user *transport.User, auth *transport.AuthInfo) error
}

// Config of a session
type Config struct {
	BotInfo      message.BotInfo
	ClientID     string
	ClientSecret string
	Identity     string
	IsAnonymous  bool
	// ThreadID resume this thread, a new one is created when empty
	ThreadID string
	// AuthCacheTTL lifetime of the cached authorization, zero disable caching
	AuthCacheTTL time.Duration
	// EventTopic topic of the published conversation events
	EventTopic string
}

// Option session option
type Option func(*Session)

// SetStore option, default memory store
func SetStore(s store.Store) Option {
	return func(sess *Session) {
		sess.store = s
	}
}

// SetCache option, default memory cache
func SetCache(c interfaces.Cache) Option {
	return func(sess *Session) {
		sess.cache = c
	}
}

// SetPublisher option, no events are published when unset
func SetPublisher(p interfaces.Publisher) Option {
	return func(sess *Session) {
		sess.publisher = p
	}
}

// SetListener option
func SetListener(l Listener) Option {
	return func(sess *Session) {
		sess.listener = l
	}
}

// SetDialOptions option, passed to rtm.Dial
func SetDialOptions(opts ...rtm.Option) Option {
	return func(sess *Session) {
		sess.dialOpts = append(sess.dialOpts, opts...)
	}
}

// SetSpeechEnabled option, initial speech state
func SetSpeechEnabled(enabled bool) Option {
	return func(sess *Session) {
		sess.speech = enabled
	}
}

// Session conversation controller of one bot thread
type Session struct {
	cfg       Config
	api       API
	store     store.Store
	cache     interfaces.Cache
	publisher interfaces.Publisher
	listener  Listener
	dialOpts  []rtm.Option

	dispatcher botutils.SerialDispatcher
	cancel     context.CancelFunc
	loop       sync.WaitGroup

	mu     sync.RWMutex
	user   *transport.User
	auth   *transport.AuthInfo
	thread *message.Thread
	conn   *rtm.Conn
	speech bool
	closed bool
}

// New session, call Connect to start the conversation
func New(cfg Config, api API, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		cfg:        cfg,
		api:        api,
		store:      store.NewMemoryStore(),
		cache:      cache.NewMemoryCache(),
		listener:   BaseListener{},
		dispatcher: botutils.NewSerialDispatcher(ctx),
		cancel:     cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SpeechEnabled whether incoming text is passed to Listener.OnSpeak
func (s *Session) SpeechEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.speech
}

// SetSpeechEnabled toggle speech for this session only
func (s *Session) SetSpeechEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speech = enabled
}

// Thread current thread, nil before Connect or LoadHistory
func (s *Session) Thread() *message.Thread {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.thread
}

// User signed in user, nil before authentication
func (s *Session) User() *transport.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Flush wait until every queued delivery reached the listener
func (s *Session) Flush() {
	s.dispatcher.Wait()
}

// Close stop the rtm connection and wait the pending deliveries, the store is not closed
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	var err error
	if conn != nil {
		err = conn.Close()
	}
	s.loop.Wait()
	s.dispatcher.Close()
	s.cancel()
	return err
}
