package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golangid/botkit/assertion"
	"github.com/golangid/botkit/botshared"
	"github.com/golangid/botkit/botutils"
	"github.com/golangid/botkit/logger"
	"github.com/golangid/botkit/message"
	"github.com/golangid/botkit/publisher"
	"github.com/golangid/botkit/render"
	"github.com/golangid/botkit/rtm"
	"github.com/golangid/botkit/store"
	"github.com/golangid/botkit/tracer"
	"github.com/golangid/botkit/transport"
	"go.uber.org/zap/zapcore"
)

type cachedAuth struct {
	User *transport.User     `json:"user"`
	Auth *transport.AuthInfo `json:"auth"`
}

func (s *Session) authCacheKey() string {
	return fmt.Sprintf("botkit:auth:%s:%s:%s", s.cfg.ClientID, s.cfg.BotInfo.TaskBotID, s.cfg.Identity)
}

// Authenticate sign in, a cached authorization is reused while valid
func (s *Session) Authenticate(ctx context.Context) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "Session:Authenticate")
	defer func() { trace.SetError(err); trace.Finish() }()

	_, err = s.authenticate(ctx, false)
	return err
}

// authenticate return true when the authorization came from cache
func (s *Session) authenticate(ctx context.Context, refresh bool) (fromCache bool, err error) {
	key := s.authCacheKey()
	if !refresh && s.cfg.AuthCacheTTL > 0 {
		if data, err := s.cache.Get(ctx, key); err == nil {
			var cached cachedAuth
			if json.Unmarshal(data, &cached) == nil && cached.User != nil && cached.Auth != nil {
				s.setAuth(cached.User, cached.Auth)
				return true, nil
			}
		}
	}

	token, err := assertion.New(assertion.Claims{
		ClientID:    s.cfg.ClientID,
		Identity:    s.cfg.Identity,
		IsAnonymous: s.cfg.IsAnonymous,
	}, s.cfg.ClientSecret)
	if err != nil {
		return false, err
	}

	user, auth, err := s.api.SignIn(ctx, token, s.cfg.BotInfo)
	if err != nil {
		return false, err
	}
	s.setAuth(user, auth)

	if s.cfg.AuthCacheTTL > 0 {
		data, _ := json.Marshal(cachedAuth{User: user, Auth: auth})
		if err := s.cache.Set(ctx, key, data, s.cfg.AuthCacheTTL); err != nil {
			logger.Log(zapcore.WarnLevel, err.Error(), "session", "cache_auth")
		}
	}
	return false, nil
}

func (s *Session) setAuth(user *transport.User, auth *transport.AuthInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user, s.auth = user, auth
}

func (s *Session) authInfo() (*transport.User, *transport.AuthInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.auth == nil || s.user == nil {
		return nil, nil, ErrNotAuthenticated
	}
	return s.user, s.auth, nil
}

// Connect sign in, open the rtm socket and resolve the thread
func (s *Session) Connect(ctx context.Context) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "Session:Connect")
	defer func() { trace.SetError(err); trace.Finish() }()

	s.mu.RLock()
	closed, current := s.closed, s.conn
	s.mu.RUnlock()
	if closed {
		return ErrClosed
	}
	if current != nil {
		if current.State() == rtm.StateConnected {
			return nil
		}
		s.dropConn(current)
		current.Close()
	}

	if _, err = s.openThread(ctx); err != nil {
		return err
	}

	fromCache, err := s.authenticate(ctx, false)
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	_, auth, _ := s.authInfo()

	endpoint, err := s.api.GetRTMEndpoint(ctx, auth, s.cfg.BotInfo)
	var httpErr *botutils.HTTPError
	if fromCache && errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized {
		logger.LogYellow("cached authorization rejected, signing in again")
		if delErr := s.cache.Delete(ctx, s.authCacheKey()); delErr != nil {
			logger.Log(zapcore.WarnLevel, delErr.Error(), "session", "cache_auth")
		}
		if _, err = s.authenticate(ctx, true); err != nil {
			return fmt.Errorf("authenticate: %w", err)
		}
		_, auth, _ = s.authInfo()
		endpoint, err = s.api.GetRTMEndpoint(ctx, auth, s.cfg.BotInfo)
	}
	if err != nil {
		return err
	}

	opts := append([]rtm.Option{rtm.SetStateHandler(s.onState)}, s.dialOpts...)
	conn, err := rtm.Dial(ctx, endpoint.URL, opts...)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	s.loop.Add(1)
	go s.readFrames(conn)
	return nil
}

func (s *Session) openThread(ctx context.Context) (*message.Thread, error) {
	s.mu.RLock()
	thread := s.thread
	s.mu.RUnlock()
	if thread != nil {
		return thread, nil
	}

	if s.cfg.ThreadID != "" {
		t, err := s.store.GetThread(ctx, s.cfg.ThreadID)
		if err == nil {
			thread = t
		} else if !errors.Is(err, store.ErrThreadNotFound) {
			return nil, err
		}
	}
	if thread == nil {
		thread = &message.Thread{ID: s.cfg.ThreadID, BotName: s.cfg.BotInfo.ChatBot, CreatedOn: time.Now()}
		if err := s.store.CreateThread(ctx, thread); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	s.thread = thread
	s.mu.Unlock()
	return thread, nil
}

func (s *Session) threadID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.thread == nil {
		return s.cfg.ThreadID
	}
	return s.thread.ID
}

func (s *Session) onState(state rtm.State) {
	s.submit(func(ctx context.Context) {
		s.listener.OnConnectionState(state)
	})
}

func (s *Session) readFrames(conn *rtm.Conn) {
	defer s.loop.Done()

	ctx := botshared.SetToContext(context.Background(), botshared.ContextKeyThreadID, s.threadID())
	for frame := range conn.Frames() {
		switch frame.Type {
		case message.FrameBotResponse:
			msg := message.FromBotResponse(s.threadID(), *frame.Response)
			if len(msg.Components) == 0 {
				continue
			}
			if err := s.deliver(ctx, msg, botshared.EventMessageIncoming); err != nil {
				logger.Log(zapcore.ErrorLevel, err.Error(), "session", "bot_response")
			}

		case message.FrameAck:
			if !frame.Ack.OK {
				logger.Log(zapcore.WarnLevel, fmt.Sprintf("message %d not acknowledged", frame.Ack.ReplyTo), "session", "ack")
			}

		default:
			logger.Log(zapcore.DebugLevel, string(frame.Raw), "session", frame.Type)
		}
	}

	// socket is gone, let Connect dial again
	s.dropConn(conn)
}

func (s *Session) dropConn(conn *rtm.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
}

// deliver persist msg, publish its event and queue the bubble for the listener
func (s *Session) deliver(ctx context.Context, msg message.Message, event string) error {
	threadID := s.threadID()
	if err := s.store.CreateMessage(ctx, threadID, &msg); err != nil {
		if errors.Is(err, store.ErrDuplicateMessage) {
			return nil
		}
		return err
	}

	s.publish(ctx, event, msg)

	bubble := render.Build(msg)
	s.submit(func(ctx context.Context) {
		s.listener.OnMessage(bubble)
		s.listener.OnPanel(render.PanelFor(bubble))
		if s.SpeechEnabled() {
			if text := render.SpeechText(bubble); text != "" {
				s.listener.OnSpeak(text)
			}
		}
	})
	return nil
}

func (s *Session) publish(ctx context.Context, event string, msg message.Message) {
	if s.publisher == nil {
		return
	}
	e := botshared.ConversationEvent{
		Event:     event,
		ThreadID:  msg.ThreadID,
		MessageID: msg.ID,
		Kind:      msg.Kind().String(),
		BotName:   s.cfg.BotInfo.ChatBot,
		SentOn:    msg.SentOn,
		Text:      msg.Text(),
	}
	if err := s.publisher.PublishMessage(ctx, publisher.EventArgument(s.cfg.EventTopic, e)); err != nil {
		logger.Log(zapcore.WarnLevel, err.Error(), "session", "publish")
	}
}

func (s *Session) submit(job func(context.Context)) {
	if err := s.dispatcher.Submit(s.threadID(), job); err != nil {
		logger.Log(zapcore.DebugLevel, err.Error(), "session", "submit")
	}
}
