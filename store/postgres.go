package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/golangid/botkit/message"
	"github.com/golangid/botkit/tracer"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// postgres error codes
const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS botkit_threads (
		id TEXT PRIMARY KEY,
		bot_name TEXT NOT NULL,
		created_on TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS botkit_messages (
		seq BIGSERIAL,
		id TEXT PRIMARY KEY,
		thread_id TEXT NOT NULL REFERENCES botkit_threads(id) ON DELETE CASCADE,
		direction TEXT NOT NULL,
		sent_on TIMESTAMPTZ NOT NULL,
		icon_url TEXT NOT NULL DEFAULT '',
		components JSONB NOT NULL,
		show_more BOOLEAN NOT NULL DEFAULT FALSE,
		client_message_id BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS botkit_messages_thread_idx ON botkit_messages (thread_id, sent_on, seq)`,
}

const messageColumns = `id, thread_id, direction, sent_on, icon_url, components, show_more, client_message_id`

// PostgresStore store on tables botkit_threads and botkit_messages
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore call Migrate once before first use on a fresh database
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate create tables and index when missing
func (s *PostgresStore) Migrate(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) CreateThread(ctx context.Context, thread *message.Thread) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "PostgresStore:CreateThread")
	defer func() { trace.SetError(err); trace.Finish() }()

	if thread.ID == "" {
		thread.ID = uuid.NewString()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO botkit_threads (id, bot_name, created_on) VALUES ($1, $2, $3)`,
		thread.ID, thread.BotName, thread.CreatedOn,
	)
	return err
}

func (s *PostgresStore) GetThread(ctx context.Context, threadID string) (thread *message.Thread, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "PostgresStore:GetThread")
	defer func() { trace.SetError(err); trace.Finish() }()

	thread = new(message.Thread)
	err = s.db.QueryRowContext(ctx,
		`SELECT id, bot_name, created_on FROM botkit_threads WHERE id = $1`, threadID,
	).Scan(&thread.ID, &thread.BotName, &thread.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrThreadNotFound
	}
	if err != nil {
		return nil, err
	}
	return thread, nil
}

func (s *PostgresStore) CreateMessage(ctx context.Context, threadID string, msg *message.Message) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "PostgresStore:CreateMessage")
	defer func() { trace.SetError(err); trace.Finish() }()
	trace.SetTag("threadId", threadID)

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	msg.ThreadID = threadID

	components, err := json.Marshal(componentsOrEmpty(msg.Components))
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO botkit_messages (`+messageColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		msg.ID, threadID, string(msg.Direction), msg.SentOn, msg.IconURL, string(components), msg.ShowMore, msg.ClientMessageID,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return ErrDuplicateMessage
		case pqForeignKeyViolation:
			return ErrThreadNotFound
		}
	}
	return err
}

func (s *PostgresStore) GetMessage(ctx context.Context, messageID string) (msg *message.Message, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "PostgresStore:GetMessage")
	defer func() { trace.SetError(err); trace.Finish() }()

	row := s.db.QueryRowContext(ctx, `SELECT `+messageColumns+` FROM botkit_messages WHERE id = $1`, messageID)
	m, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *PostgresStore) FetchMessages(ctx context.Context, threadID string) (msgs []message.Message, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "PostgresStore:FetchMessages")
	defer func() { trace.SetError(err); trace.Finish() }()
	trace.SetTag("threadId", threadID)

	if _, err = s.GetThread(ctx, threadID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM botkit_messages WHERE thread_id = $1 ORDER BY sent_on ASC, seq ASC`, threadID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (s *PostgresStore) SetShowMore(ctx context.Context, messageID string, showMore bool) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "PostgresStore:SetShowMore")
	defer func() { trace.SetError(err); trace.Finish() }()

	res, err := s.db.ExecContext(ctx, `UPDATE botkit_messages SET show_more = $1 WHERE id = $2`, showMore, messageID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (s *PostgresStore) ResetShowMore(ctx context.Context, threadID string) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "PostgresStore:ResetShowMore")
	defer func() { trace.SetError(err); trace.Finish() }()

	if _, err = s.GetThread(ctx, threadID); err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE botkit_messages SET show_more = FALSE WHERE thread_id = $1 AND show_more`, threadID,
	)
	return err
}

func (s *PostgresStore) Disconnect(ctx context.Context) error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMessage(row rowScanner) (m message.Message, err error) {
	var direction string
	var components []byte
	if err = row.Scan(&m.ID, &m.ThreadID, &direction, &m.SentOn, &m.IconURL, &components, &m.ShowMore, &m.ClientMessageID); err != nil {
		return m, err
	}
	m.Direction = message.Direction(direction)
	if err = json.Unmarshal(components, &m.Components); err != nil {
		return m, err
	}
	return m, nil
}

func componentsOrEmpty(c []message.Component) []message.Component {
	if c == nil {
		return []message.Component{}
	}
	return c
}
