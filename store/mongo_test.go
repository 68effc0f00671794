package store

import (
	"context"
	"testing"
	"time"

	"github.com/golangid/botkit/message"
	"github.com/golangid/botkit/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	ctx := context.Background()
	sentOn := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	threadDoc := bson.D{
		{Key: "_id", Value: "t1"},
		{Key: "botName", Value: "Kora"},
		{Key: "createdOn", Value: sentOn},
	}
	threadNS := mtest.TestDb + "." + mongoThreads
	messageNS := mtest.TestDb + "." + mongoMessages

	mt.Run("get thread", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, threadNS, mtest.FirstBatch, threadDoc))

		thread, err := NewMongoStore(mt.DB).GetThread(ctx, "t1")
		require.NoError(mt, err)
		assert.Equal(mt, "Kora", thread.BotName)
	})

	mt.Run("thread not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, threadNS, mtest.FirstBatch))

		_, err := NewMongoStore(mt.DB).GetThread(ctx, "missing")
		assert.ErrorIs(mt, err, ErrThreadNotFound)
	})

	mt.Run("create thread", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		thread := &message.Thread{BotName: "Kora"}
		require.NoError(mt, NewMongoStore(mt.DB).CreateThread(ctx, thread))
		assert.NotEmpty(mt, thread.ID)
	})

	mt.Run("create message", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, threadNS, mtest.FirstBatch, threadDoc),
			mtest.CreateSuccessResponse(),
		)

		msg := &message.Message{Direction: message.DirectionOutgoing, SentOn: sentOn}
		require.NoError(mt, NewMongoStore(mt.DB).CreateMessage(ctx, "t1", msg))
		assert.NotEmpty(mt, msg.ID)
		assert.Equal(mt, "t1", msg.ThreadID)
	})

	mt.Run("duplicate message", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, threadNS, mtest.FirstBatch, threadDoc),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}),
		)

		err := NewMongoStore(mt.DB).CreateMessage(ctx, "t1", &message.Message{ID: "m1"})
		assert.ErrorIs(mt, err, ErrDuplicateMessage)
	})

	mt.Run("fetch messages", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, threadNS, mtest.FirstBatch, threadDoc),
			mtest.CreateCursorResponse(0, messageNS, mtest.FirstBatch,
				bson.D{
					{Key: "_id", Value: "m1"},
					{Key: "threadId", Value: "t1"},
					{Key: "direction", Value: "incoming"},
					{Key: "sentOn", Value: sentOn},
					{Key: "components", Value: bson.A{
						bson.D{{Key: "kind", Value: "carousel"}, {Key: "payload", Value: `{"elements":[]}`}},
					}},
					{Key: "showMore", Value: true},
					{Key: "seq", Value: int64(1)},
				},
				bson.D{
					{Key: "_id", Value: "m2"},
					{Key: "threadId", Value: "t1"},
					{Key: "direction", Value: "outgoing"},
					{Key: "sentOn", Value: sentOn.Add(time.Second)},
					{Key: "components", Value: bson.A{
						bson.D{{Key: "kind", Value: "text"}, {Key: "payload", Value: "hello"}},
					}},
					{Key: "seq", Value: int64(2)},
				},
			),
		)

		msgs, err := NewMongoStore(mt.DB).FetchMessages(ctx, "t1")
		require.NoError(mt, err)
		require.Len(mt, msgs, 2)
		assert.Equal(mt, template.KindCarousel, msgs[0].Kind())
		assert.True(mt, msgs[0].ShowMore)
		assert.Equal(mt, message.DirectionIncoming, msgs[0].Direction)
		assert.Equal(mt, "hello", msgs[1].Text())
	})

	mt.Run("set show more on missing message", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := NewMongoStore(mt.DB).SetShowMore(ctx, "missing", true)
		assert.ErrorIs(mt, err, ErrMessageNotFound)
	})

	mt.Run("set show more", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		assert.NoError(mt, NewMongoStore(mt.DB).SetShowMore(ctx, "m1", true))
	})
}

func TestMongoMessageConversion(t *testing.T) {
	msg := message.Message{
		ID:        "m1",
		ThreadID:  "t1",
		Direction: message.DirectionIncoming,
		Components: []message.Component{
			{Kind: template.KindResponsiveTable, Payload: "{}"},
			{Kind: template.KindText, Payload: "hi"},
		},
	}

	doc := toMongoMessage(&msg)
	assert.Equal(t, "responsiveTable", doc.Components[0].Kind)

	back, err := doc.toMessage()
	require.NoError(t, err)
	assert.Equal(t, msg, back)

	doc.Components[0].Kind = "hologram"
	_, err = doc.toMessage()
	assert.Error(t, err)
}
