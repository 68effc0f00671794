package rtm

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/golangid/botkit/logger"
	"github.com/golangid/botkit/message"
	"github.com/gorilla/websocket"
	"go.uber.org/zap/zapcore"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 * 1024 * 1024
)

// ErrClosed send on a closed connection
var ErrClosed = errors.New("rtm: connection closed")

// Frame decoded socket frame, exactly one of Response and Ack is set for those types
type Frame struct {
	Type     string
	Response *message.BotResponse
	Ack      *message.Ack
	Raw      []byte
}

type options struct {
	dialer       *websocket.Dialer
	header       http.Header
	bufferSize   int
	stateHandler func(State)
}

// Option dial option
type Option func(*options)

// SetDialer option, default websocket.DefaultDialer
func SetDialer(d *websocket.Dialer) Option {
	return func(o *options) {
		o.dialer = d
	}
}

// SetHeader option, header sent with the handshake
func SetHeader(h http.Header) Option {
	return func(o *options) {
		o.header = h
	}
}

// SetBufferSize option, capacity of the frames and send queues
func SetBufferSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.bufferSize = size
		}
	}
}

// SetStateHandler option, called on every state change from the pump goroutines
func SetStateHandler(fn func(State)) Option {
	return func(o *options) {
		o.stateHandler = fn
	}
}

// Conn rtm websocket connection, frames are delivered in arrival order
type Conn struct {
	ws     *websocket.Conn
	frames chan Frame
	send   chan []byte
	done   chan struct{}
	wg     sync.WaitGroup

	closeOnce sync.Once
	mu        sync.Mutex
	state     State
	closing   bool
	onState   func(State)
}

// Dial open the rtm socket and start its read and write pumps
func Dial(ctx context.Context, url string, opts ...Option) (*Conn, error) {
	o := options{dialer: websocket.DefaultDialer, bufferSize: 64}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Conn{
		frames:  make(chan Frame, o.bufferSize),
		send:    make(chan []byte, o.bufferSize),
		done:    make(chan struct{}),
		state:   -1,
		onState: o.stateHandler,
	}
	c.setState(StateConnecting)

	ws, _, err := o.dialer.DialContext(ctx, url, o.header)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) {
			c.setState(StateNoNetwork)
		} else {
			c.setState(StateFailed)
		}
		return nil, err
	}
	c.ws = ws
	c.setState(StateConnected)

	c.wg.Add(2)
	go c.readPump()
	go c.writePump()
	return c, nil
}

// Frames channel closed after the read pump exits
func (c *Conn) Frames() <-chan Frame {
	return c.frames
}

// State current connection state
func (c *Conn) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Send queue msg for the write pump
func (c *Conn) Send(ctx context.Context, msg message.UserMessage) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	select {
	case c.send <- b:
		return nil
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close send a close frame and wait until both pumps exit
func (c *Conn) Close() error {
	c.mu.Lock()
	c.closing = true
	c.mu.Unlock()

	c.shutdown()
	c.wg.Wait()
	return nil
}

func (c *Conn) shutdown() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Conn) setState(s State) {
	c.mu.Lock()
	if c.state == s {
		c.mu.Unlock()
		return
	}
	c.state = s
	handler := c.onState
	c.mu.Unlock()

	if handler != nil {
		handler(s)
	}
}

func (c *Conn) readPump() {
	defer func() {
		c.mu.Lock()
		closing := c.closing
		c.mu.Unlock()
		if closing {
			c.setState(StateClosed)
		} else {
			c.setState(StateFailed)
		}

		c.shutdown()
		close(c.frames)
		c.wg.Done()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Log(zapcore.WarnLevel, err.Error(), "rtm", "read_pump")
			}
			return
		}

		frame, err := decodeFrame(data)
		if err != nil {
			logger.Log(zapcore.WarnLevel, err.Error(), "rtm", "decode_frame")
			continue
		}

		select {
		case c.frames <- frame:
		case <-c.done:
			return
		}
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
		c.wg.Done()
	}()

	for {
		select {
		case data := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Log(zapcore.WarnLevel, err.Error(), "rtm", "write_pump")
				c.shutdown()
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.shutdown()
				return
			}

		case <-c.done:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func decodeFrame(data []byte) (Frame, error) {
	var envelope message.Frame
	if err := json.Unmarshal(data, &envelope); err != nil {
		return Frame{}, err
	}

	frame := Frame{Type: envelope.Type, Raw: data}
	switch envelope.Type {
	case message.FrameBotResponse:
		var resp message.BotResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return Frame{}, err
		}
		frame.Response = &resp

	case message.FrameAck:
		var ack message.Ack
		if err := json.Unmarshal(data, &ack); err != nil {
			return Frame{}, err
		}
		frame.Ack = &ack
	}
	return frame, nil
}
