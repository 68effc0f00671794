package store

import (
	"context"
	"sort"
	"sync"

	"github.com/golangid/botkit/message"
	"github.com/google/uuid"
)

type memoryMessage struct {
	msg message.Message
	seq int64
}

type memoryStore struct {
	mu       sync.RWMutex
	seq      int64
	threads  map[string]message.Thread
	messages map[string]*memoryMessage
	byThread map[string][]*memoryMessage
}

// NewMemoryStore in process store, content is lost on exit
func NewMemoryStore() Store {
	return &memoryStore{
		threads:  make(map[string]message.Thread),
		messages: make(map[string]*memoryMessage),
		byThread: make(map[string][]*memoryMessage),
	}
}

func (s *memoryStore) CreateThread(ctx context.Context, thread *message.Thread) error {
	if thread.ID == "" {
		thread.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads[thread.ID] = *thread
	return nil
}

func (s *memoryStore) GetThread(ctx context.Context, threadID string) (*message.Thread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.threads[threadID]
	if !ok {
		return nil, ErrThreadNotFound
	}
	return &t, nil
}

func (s *memoryStore) CreateMessage(ctx context.Context, threadID string, msg *message.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.threads[threadID]; !ok {
		return ErrThreadNotFound
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if _, ok := s.messages[msg.ID]; ok {
		return ErrDuplicateMessage
	}
	msg.ThreadID = threadID

	s.seq++
	stored := &memoryMessage{msg: copyMessage(*msg), seq: s.seq}
	s.messages[msg.ID] = stored
	s.byThread[threadID] = append(s.byThread[threadID], stored)
	return nil
}

func (s *memoryStore) GetMessage(ctx context.Context, messageID string) (*message.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.messages[messageID]
	if !ok {
		return nil, ErrMessageNotFound
	}
	msg := copyMessage(m.msg)
	return &msg, nil
}

func (s *memoryStore) FetchMessages(ctx context.Context, threadID string) ([]message.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.threads[threadID]; !ok {
		return nil, ErrThreadNotFound
	}
	stored := append([]*memoryMessage(nil), s.byThread[threadID]...)
	sort.SliceStable(stored, func(i, j int) bool {
		if stored[i].msg.SentOn.Equal(stored[j].msg.SentOn) {
			return stored[i].seq < stored[j].seq
		}
		return stored[i].msg.SentOn.Before(stored[j].msg.SentOn)
	})

	msgs := make([]message.Message, 0, len(stored))
	for _, m := range stored {
		msgs = append(msgs, copyMessage(m.msg))
	}
	return msgs, nil
}

func (s *memoryStore) SetShowMore(ctx context.Context, messageID string, showMore bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[messageID]
	if !ok {
		return ErrMessageNotFound
	}
	m.msg.ShowMore = showMore
	return nil
}

func (s *memoryStore) ResetShowMore(ctx context.Context, threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.threads[threadID]; !ok {
		return ErrThreadNotFound
	}
	for _, m := range s.byThread[threadID] {
		m.msg.ShowMore = false
	}
	return nil
}

func (s *memoryStore) Disconnect(ctx context.Context) error {
	return nil
}

func copyMessage(m message.Message) message.Message {
	m.Components = append([]message.Component(nil), m.Components...)
	return m
}
