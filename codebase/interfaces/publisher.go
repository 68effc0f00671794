package interfaces

import (
	"context"

	"github.com/golangid/botkit/botshared"
)

// Publisher abstract interface
type Publisher interface {
	PublishMessage(ctx context.Context, args *botshared.PublisherArgument) (err error)
}
