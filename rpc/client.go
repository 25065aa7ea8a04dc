package rpc

import (
	"context"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/nvimbind/nvimgen/errors"
	"github.com/nvimbind/nvimgen/msgpack"
)

// Message type discriminants of the wire protocol.
const (
	typeRequest      = 0
	typeResponse     = 1
	typeNotification = 2
)

// Client is a synchronous msgpack-rpc session over a byte stream. It
// models at most one outstanding call: Call holds the session lock for
// the full request/response exchange and suspends the caller until the
// correspondingly-shaped reply is decoded.
type Client struct {
	mu     sync.Mutex
	enc    *msgpack.Encoder
	dec    *msgpack.Decoder
	nextID int64
}

// NewClient creates a Client over the given stream. The registry is
// the handle tag assignment both sides agreed on at generation time.
func NewClient(rw io.ReadWriter, reg *msgpack.Registry) *Client {
	return &Client{
		enc:    msgpack.NewEncoder(rw),
		dec:    msgpack.NewDecoderWithRegistry(rw, reg),
		nextID: 1,
	}
}

// Call implements Session.
func (c *Client) Call(ctx context.Context, method string, nargs int,
	args func(*msgpack.Encoder) error,
	reply func(*msgpack.Decoder) error) error {

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return errors.Transport(errors.PhaseRPC, "context done before call", err)
	}

	id := c.nextID
	c.nextID++

	Logger().Debug("call", zap.String("method", method), zap.Int64("id", id))

	if err := c.writeRequest(id, method, nargs, args); err != nil {
		return err
	}
	return c.readResponse(id, method, reply)
}

func (c *Client) writeRequest(id int64, method string, nargs int, args func(*msgpack.Encoder) error) error {
	if err := c.enc.WriteArrayLen(4); err != nil {
		return err
	}
	if err := c.enc.WriteInt(typeRequest); err != nil {
		return err
	}
	if err := c.enc.WriteInt(id); err != nil {
		return err
	}
	if err := c.enc.WriteString(method); err != nil {
		return err
	}
	if err := c.enc.WriteArrayLen(nargs); err != nil {
		return err
	}
	return args(c.enc)
}

func (c *Client) readResponse(id int64, method string, reply func(*msgpack.Decoder) error) error {
	for {
		frameLen, err := c.dec.ReadArrayLen()
		if err != nil {
			return err
		}
		msgType, err := c.dec.ReadInt()
		if err != nil {
			return err
		}

		// Notifications may arrive ahead of the reply; they carry no
		// message id and are not this layer's concern.
		if msgType == typeNotification {
			if frameLen != 3 {
				return errors.InvalidData(errors.PhaseRPC, nil, "notification frame is not 3 elements")
			}
			if err := c.dec.Skip(); err != nil {
				return err
			}
			if err := c.dec.Skip(); err != nil {
				return err
			}
			continue
		}

		if msgType != typeResponse || frameLen != 4 {
			return errors.New(errors.PhaseRPC, errors.KindInvalidData).
				Detail("unexpected frame: type %d, %d elements", msgType, frameLen).
				Build()
		}

		gotID, err := c.dec.ReadInt()
		if err != nil {
			return err
		}
		if gotID != id {
			// With one outstanding call the ids cannot diverge.
			return errors.New(errors.PhaseRPC, errors.KindInvalidData).
				Detail("response id %d does not match request id %d", gotID, id).
				Build()
		}

		errValue, err := c.dec.ReadValue()
		if err != nil {
			return err
		}
		if _, isNil := errValue.(msgpack.Nil); !isNil {
			if err := c.dec.Skip(); err != nil {
				return err
			}
			return errors.CallFailed(method, errValue)
		}

		return reply(c.dec)
	}
}
