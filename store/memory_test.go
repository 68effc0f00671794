package store

import (
	"context"
	"testing"
	"time"

	"github.com/golangid/botkit/message"
	"github.com/golangid/botkit/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Disconnect(ctx)

	thread := &message.Thread{BotName: "Kora", CreatedOn: time.Now()}
	require.NoError(t, s.CreateThread(ctx, thread))
	require.NotEmpty(t, thread.ID)

	got, err := s.GetThread(ctx, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kora", got.BotName)

	_, err = s.GetThread(ctx, "missing")
	assert.ErrorIs(t, err, ErrThreadNotFound)

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for _, m := range []message.Message{
		{ID: "late", SentOn: base.Add(time.Minute)},
		{ID: "tie-1", SentOn: base},
		{ID: "tie-2", SentOn: base},
		{ID: "early", SentOn: base.Add(-time.Minute), Components: []message.Component{{Kind: template.KindList, Payload: "{}"}}},
	} {
		m := m
		require.NoError(t, s.CreateMessage(ctx, thread.ID, &m))
		assert.Equal(t, thread.ID, m.ThreadID)
	}

	msgs, err := s.FetchMessages(ctx, thread.ID)
	require.NoError(t, err)
	var ids []string
	for _, m := range msgs {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"early", "tie-1", "tie-2", "late"}, ids)

	assert.ErrorIs(t, s.CreateMessage(ctx, thread.ID, &message.Message{ID: "late"}), ErrDuplicateMessage)
	assert.ErrorIs(t, s.CreateMessage(ctx, "missing", &message.Message{}), ErrThreadNotFound)
	_, err = s.FetchMessages(ctx, "missing")
	assert.ErrorIs(t, err, ErrThreadNotFound)

	require.NoError(t, s.SetShowMore(ctx, "early", true))
	m, err := s.GetMessage(ctx, "early")
	require.NoError(t, err)
	assert.True(t, m.ShowMore)
	assert.ErrorIs(t, s.SetShowMore(ctx, "nope", true), ErrMessageNotFound)

	require.NoError(t, s.ResetShowMore(ctx, thread.ID))
	m, _ = s.GetMessage(ctx, "early")
	assert.False(t, m.ShowMore)

	m.Components[0].Payload = "mutated"
	again, _ := s.GetMessage(ctx, "early")
	assert.Equal(t, "{}", again.Components[0].Payload)
}
