package session

import (
	"github.com/golangid/botkit/render"
	"github.com/golangid/botkit/rtm"
)

// Listener receive deliveries of one session. Calls for a thread are serialized in arrival order,
// a bubble with an already delivered MessageID replaces the previous one.
type Listener interface {
	OnMessage(bubble render.Bubble)
	OnPanel(panel render.Panel)
	OnOpenURL(url string)
	OnSpeak(text string)
	OnConnectionState(state rtm.State)
}

// BaseListener no-op Listener, embed it to implement only some methods
type BaseListener struct{}

// OnMessage method
func (BaseListener) OnMessage(render.Bubble) {}

// OnPanel method
func (BaseListener) OnPanel(render.Panel) {}

// OnOpenURL method
func (BaseListener) OnOpenURL(string) {}

// OnSpeak method
func (BaseListener) OnSpeak(string) {}

// OnConnectionState method
func (BaseListener) OnConnectionState(rtm.State) {}
