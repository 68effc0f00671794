package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/golangid/botkit/botshared"
	"github.com/golangid/botkit/message"
	"github.com/golangid/botkit/render"
	"github.com/golangid/botkit/tracer"
	"github.com/golangid/botkit/transport"
)

// HistoryResult outcome of one LoadHistory page
type HistoryResult struct {
	Loaded        int
	MoreAvailable bool
	// LastMessageID id to pass to the next LoadHistory call
	LastMessageID string
}

// SendText persist and display text as an outgoing message then send it over rtm
func (s *Session) SendText(ctx context.Context, text string) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "Session:SendText")
	defer func() { trace.SetError(err); trace.Finish() }()

	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	s.mu.RLock()
	conn := s.conn
	s.mu.RUnlock()
	if conn == nil {
		return ErrNotConnected
	}

	msg := message.NewTextMessage(s.threadID(), text)
	ctx = botshared.SetToContext(ctx, botshared.ContextKeyClientMessageID, msg.ClientMessageID)
	if err = s.deliver(ctx, msg, botshared.EventMessageOutgoing); err != nil {
		return err
	}
	return conn.Send(ctx, message.NewUserMessage(msg.ClientMessageID, msg.Text(), s.cfg.BotInfo))
}

// HandleAction postback send the payload as user text, link ask the listener to open the url
func (s *Session) HandleAction(ctx context.Context, action render.Action) error {
	switch action.Type {
	case render.ActionPostback:
		text := action.Payload
		if text == "" {
			text = action.Title
		}
		return s.SendText(ctx, text)

	case render.ActionLink:
		if action.URL == "" {
			return fmt.Errorf("%w: link without url", ErrUnknownAction)
		}
		s.submit(func(ctx context.Context) {
			s.listener.OnOpenURL(action.URL)
		})
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, action.Type)
}

// ShowMore expand the list of messageID and deliver its bubble again
func (s *Session) ShowMore(ctx context.Context, messageID string) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "Session:ShowMore")
	defer func() { trace.SetError(err); trace.Finish() }()

	if err = s.store.SetShowMore(ctx, messageID, true); err != nil {
		return err
	}
	msg, err := s.store.GetMessage(ctx, messageID)
	if err != nil {
		return err
	}

	bubble := render.Build(*msg)
	s.submit(func(ctx context.Context) {
		s.listener.OnMessage(bubble)
	})
	return nil
}

// LoadHistory fetch one history page after fromMessageID and persist its messages,
// messages already stored are skipped
func (s *Session) LoadHistory(ctx context.Context, fromMessageID string) (result HistoryResult, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "Session:LoadHistory")
	defer func() { trace.SetError(err); trace.Finish() }()

	if _, err = s.openThread(ctx); err != nil {
		return result, err
	}
	if _, _, err = s.authInfo(); err != nil {
		if err = s.Authenticate(ctx); err != nil {
			return result, err
		}
	}
	_, auth, _ := s.authInfo()

	page, err := s.api.GetHistory(ctx, fromMessageID, auth, s.cfg.BotInfo)
	if err != nil {
		return result, err
	}

	result.MoreAvailable = page.MoreAvailable
	threadID := s.threadID()
	for _, h := range page.Messages {
		msg := message.FromHistory(threadID, h)
		result.LastMessageID = msg.ID
		if msg.IconURL == "" && msg.Direction == message.DirectionIncoming {
			msg.IconURL = page.Icon
		}
		if len(msg.Components) == 0 {
			continue
		}
		if err = s.deliver(ctx, msg, botshared.EventMessageHistory); err != nil {
			return result, err
		}
		result.Loaded++
	}
	return result, nil
}

// Messages bubbles of the thread ordered by send time
func (s *Session) Messages(ctx context.Context) ([]render.Bubble, error) {
	thread, err := s.openThread(ctx)
	if err != nil {
		return nil, err
	}
	msgs, err := s.store.FetchMessages(ctx, thread.ID)
	if err != nil {
		return nil, err
	}
	bubbles := make([]render.Bubble, 0, len(msgs))
	for _, m := range msgs {
		bubbles = append(bubbles, render.Build(m))
	}
	return bubbles, nil
}

// Subscribe register deviceToken for push notifications of the signed in user
func (s *Session) Subscribe(ctx context.Context, deviceToken []byte) error {
	user, auth, err := s.signedIn(ctx)
	if err != nil {
		return err
	}
	return s.api.Subscribe(ctx, deviceToken, user, auth)
}

// Unsubscribe remove deviceToken from push notifications of the signed in user
func (s *Session) Unsubscribe(ctx context.Context, deviceToken []byte) error {
	user, auth, err := s.signedIn(ctx)
	if err != nil {
		return err
	}
	return s.api.Unsubscribe(ctx, deviceToken, user, auth)
}

func (s *Session) signedIn(ctx context.Context) (*transport.User, *transport.AuthInfo, error) {
	if user, auth, err := s.authInfo(); err == nil {
		return user, auth, nil
	}
	if err := s.Authenticate(ctx); err != nil {
		return nil, nil, err
	}
	return s.authInfo()
}
