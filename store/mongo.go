package store

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/golangid/botkit/message"
	"github.com/golangid/botkit/template"
	"github.com/golangid/botkit/tracer"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names
const (
	mongoThreads  = "threads"
	mongoMessages = "messages"
)

type (
	mongoComponent struct {
		Kind    string `bson:"kind"`
		Payload string `bson:"payload"`
	}

	mongoMessage struct {
		ID              string           `bson:"_id"`
		ThreadID        string           `bson:"threadId"`
		Direction       string           `bson:"direction"`
		SentOn          time.Time        `bson:"sentOn"`
		IconURL         string           `bson:"iconUrl,omitempty"`
		Components      []mongoComponent `bson:"components"`
		ShowMore        bool             `bson:"showMore"`
		ClientMessageID int64            `bson:"clientMessageId,omitempty"`
		// Seq insertion order, tie breaker of equal sentOn
		Seq int64 `bson:"seq"`
	}
)

type mongoStore struct {
	db  *mongo.Database
	seq int64
}

// NewMongoStore store on collections "threads" and "messages" of db
func NewMongoStore(db *mongo.Database) Store {
	return &mongoStore{db: db, seq: time.Now().UnixNano()}
}

// EnsureMongoIndexes create the index used by FetchMessages
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(mongoMessages).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "threadId", Value: 1}, {Key: "sentOn", Value: 1}, {Key: "seq", Value: 1}},
	})
	return err
}

func (s *mongoStore) CreateThread(ctx context.Context, thread *message.Thread) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "MongoStore:CreateThread")
	defer func() { trace.SetError(err); trace.Finish() }()

	if thread.ID == "" {
		thread.ID = uuid.NewString()
	}
	_, err = s.db.Collection(mongoThreads).InsertOne(ctx, thread)
	return err
}

func (s *mongoStore) GetThread(ctx context.Context, threadID string) (thread *message.Thread, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "MongoStore:GetThread")
	defer func() { trace.SetError(err); trace.Finish() }()

	thread = new(message.Thread)
	err = s.db.Collection(mongoThreads).FindOne(ctx, bson.M{"_id": threadID}).Decode(thread)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrThreadNotFound
	}
	if err != nil {
		return nil, err
	}
	return thread, nil
}

func (s *mongoStore) CreateMessage(ctx context.Context, threadID string, msg *message.Message) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "MongoStore:CreateMessage")
	defer func() { trace.SetError(err); trace.Finish() }()
	trace.SetTag("threadId", threadID)

	if _, err = s.GetThread(ctx, threadID); err != nil {
		return err
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	msg.ThreadID = threadID

	doc := toMongoMessage(msg)
	doc.Seq = atomic.AddInt64(&s.seq, 1)
	_, err = s.db.Collection(mongoMessages).InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateMessage
	}
	return err
}

func (s *mongoStore) GetMessage(ctx context.Context, messageID string) (msg *message.Message, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "MongoStore:GetMessage")
	defer func() { trace.SetError(err); trace.Finish() }()

	var doc mongoMessage
	err = s.db.Collection(mongoMessages).FindOne(ctx, bson.M{"_id": messageID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	m, err := doc.toMessage()
	return &m, err
}

func (s *mongoStore) FetchMessages(ctx context.Context, threadID string) (msgs []message.Message, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "MongoStore:FetchMessages")
	defer func() { trace.SetError(err); trace.Finish() }()
	trace.SetTag("threadId", threadID)

	if _, err = s.GetThread(ctx, threadID); err != nil {
		return nil, err
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "sentOn", Value: 1}, {Key: "seq", Value: 1}})
	cur, err := s.db.Collection(mongoMessages).Find(ctx, bson.M{"threadId": threadID}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc mongoMessage
		if err = cur.Decode(&doc); err != nil {
			return nil, err
		}
		m, err := doc.toMessage()
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, cur.Err()
}

func (s *mongoStore) SetShowMore(ctx context.Context, messageID string, showMore bool) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "MongoStore:SetShowMore")
	defer func() { trace.SetError(err); trace.Finish() }()

	res, err := s.db.Collection(mongoMessages).UpdateOne(ctx,
		bson.M{"_id": messageID},
		bson.M{"$set": bson.M{"showMore": showMore}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (s *mongoStore) ResetShowMore(ctx context.Context, threadID string) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "MongoStore:ResetShowMore")
	defer func() { trace.SetError(err); trace.Finish() }()

	if _, err = s.GetThread(ctx, threadID); err != nil {
		return err
	}
	_, err = s.db.Collection(mongoMessages).UpdateMany(ctx,
		bson.M{"threadId": threadID, "showMore": true},
		bson.M{"$set": bson.M{"showMore": false}},
	)
	return err
}

func (s *mongoStore) Disconnect(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

func toMongoMessage(m *message.Message) mongoMessage {
	doc := mongoMessage{
		ID:              m.ID,
		ThreadID:        m.ThreadID,
		Direction:       string(m.Direction),
		SentOn:          m.SentOn,
		IconURL:         m.IconURL,
		ShowMore:        m.ShowMore,
		ClientMessageID: m.ClientMessageID,
		Components:      []mongoComponent{},
	}
	for _, c := range m.Components {
		doc.Components = append(doc.Components, mongoComponent{Kind: c.Kind.String(), Payload: c.Payload})
	}
	return doc
}

func (d mongoMessage) toMessage() (message.Message, error) {
	m := message.Message{
		ID:              d.ID,
		ThreadID:        d.ThreadID,
		Direction:       message.Direction(d.Direction),
		SentOn:          d.SentOn,
		IconURL:         d.IconURL,
		ShowMore:        d.ShowMore,
		ClientMessageID: d.ClientMessageID,
	}
	for _, c := range d.Components {
		kind, err := template.ParseKind(c.Kind)
		if err != nil {
			return m, fmt.Errorf("message %s: %w", d.ID, err)
		}
		m.Components = append(m.Components, message.Component{Kind: kind, Payload: c.Payload})
	}
	return m, nil
}
