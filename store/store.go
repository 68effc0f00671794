package store

import (
	"context"
	"errors"

	"github.com/golangid/botkit/codebase/interfaces"
	"github.com/golangid/botkit/message"
)

// Store errors
var (
	ErrThreadNotFound   = errors.New("store: thread not found")
	ErrMessageNotFound  = errors.New("store: message not found")
	ErrDuplicateMessage = errors.New("store: message already exists")
)

// Store persistence of threads and their messages
type Store interface {
	CreateThread(ctx context.Context, thread *message.Thread) error
	GetThread(ctx context.Context, threadID string) (*message.Thread, error)
	// CreateMessage persist msg in thread, msg.ThreadID is overwritten with threadID
	CreateMessage(ctx context.Context, threadID string, msg *message.Message) error
	GetMessage(ctx context.Context, messageID string) (*message.Message, error)
	// FetchMessages ordered by SentOn ascending, insertion order on equal SentOn
	FetchMessages(ctx context.Context, threadID string) ([]message.Message, error)
	SetShowMore(ctx context.Context, messageID string, showMore bool) error
	// ResetShowMore clear the show more flag of every message in thread
	ResetShowMore(ctx context.Context, threadID string) error
	interfaces.Closer
}
