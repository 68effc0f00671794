package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golangid/botkit/message"
	"github.com/golangid/botkit/template"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgres(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(db), mock
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgres(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS botkit_threads").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS botkit_messages").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateMessage(t *testing.T) {
	insert := regexp.QuoteMeta(`INSERT INTO botkit_messages`)

	tests := map[string]struct {
		execErr error
		wantErr error
	}{
		"success":          {},
		"duplicate":        {execErr: &pq.Error{Code: pqUniqueViolation}, wantErr: ErrDuplicateMessage},
		"thread not found": {execErr: &pq.Error{Code: pqForeignKeyViolation}, wantErr: ErrThreadNotFound},
		"other error":      {execErr: sql.ErrConnDone, wantErr: sql.ErrConnDone},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, mock := newMockPostgres(t)
			exp := mock.ExpectExec(insert).WithArgs(
				"m1", "t1", "incoming", sqlmock.AnyArg(), "", `[{"kind":"quickReply","payload":"{}"}]`, false, int64(0),
			)
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(1, 1))
			}

			msg := &message.Message{
				ID:         "m1",
				Direction:  message.DirectionIncoming,
				SentOn:     time.Now(),
				Components: []message.Component{{Kind: template.KindQuickReply, Payload: "{}"}},
			}
			err := s.CreateMessage(context.Background(), "t1", msg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "t1", msg.ThreadID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresStore_FetchMessages(t *testing.T) {
	s, mock := newMockPostgres(t)
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, bot_name, created_on FROM botkit_threads WHERE id = $1`)).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "bot_name", "created_on"}).AddRow("t1", "Kora", created))
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY sent_on ASC, seq ASC`)).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "thread_id", "direction", "sent_on", "icon_url", "components", "show_more", "client_message_id",
		}).
			AddRow("m1", "t1", "outgoing", created, "", []byte(`[{"kind":"text","payload":"hi"}]`), false, int64(1700000000000)).
			AddRow("m2", "t1", "incoming", created.Add(time.Second), "icon.png", []byte(`[{"kind":"list","payload":"{}"}]`), true, int64(0)))

	msgs, err := s.FetchMessages(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hi", msgs[0].Text())
	assert.Equal(t, int64(1700000000000), msgs[0].ClientMessageID)
	assert.Equal(t, template.KindList, msgs[1].Kind())
	assert.True(t, msgs[1].ShowMore)
	assert.Equal(t, "icon.png", msgs[1].IconURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FetchMessagesUnknownThread(t *testing.T) {
	s, mock := newMockPostgres(t)
	mock.ExpectQuery("FROM botkit_threads").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := s.FetchMessages(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrThreadNotFound)
}

func TestPostgresStore_SetShowMore(t *testing.T) {
	tests := map[string]struct {
		affected int64
		wantErr  error
	}{
		"updated": {affected: 1},
		"missing": {affected: 0, wantErr: ErrMessageNotFound},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, mock := newMockPostgres(t)
			mock.ExpectExec(regexp.QuoteMeta(`UPDATE botkit_messages SET show_more = $1 WHERE id = $2`)).
				WithArgs(true, "m1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := s.SetShowMore(context.Background(), "m1", true)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostgresStore_GetMessageNotFound(t *testing.T) {
	s, mock := newMockPostgres(t)
	mock.ExpectQuery("FROM botkit_messages WHERE id").WithArgs("nope").WillReturnError(sql.ErrNoRows)

	_, err := s.GetMessage(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrMessageNotFound)
}
