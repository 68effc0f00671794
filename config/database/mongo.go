package database

import (
	"context"
	"fmt"
	"time"

	"github.com/golangid/botkit/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// ConnectMongoDB connect to mongodb with dsn, database name taken from dsn path
func ConnectMongoDB(ctx context.Context, dsn string, opts ...*options.ClientOptions) (*mongo.Database, error) {
	defer logger.LogWithDefer("Load MongoDB connection...")()

	connDSN, err := connstring.ParseAndValidate(dsn)
	if err != nil {
		return nil, fmt.Errorf("mongodb dsn: %w", err)
	}
	if connDSN.Database == "" {
		return nil, fmt.Errorf("mongodb dsn: missing database name")
	}

	clientOpts := []*options.ClientOptions{
		options.Client().ApplyURI(connDSN.String()),
		options.Client().SetConnectTimeout(10 * time.Second),
		options.Client().SetServerSelectionTimeout(10 * time.Second),
	}
	clientOpts = append(clientOpts, opts...)

	client, err := mongo.Connect(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("mongodb: %w", err)
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}
	return client.Database(connDSN.Database), nil
}
