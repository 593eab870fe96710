// internal/poller/modbus/client.go
package modbus

import (
	"errors"
	"time"

	"github.com/goburrow/modbus"
)

// Client implements poller.Session over Modbus TCP holding registers.
type Client struct {
	handler *modbus.TCPClientHandler
	api     modbus.Client
}

// Config is minimal transport config.
type Config struct {
	Endpoint       string
	SlaveID        byte
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
}

// Dial opens one TCP connection. One attempt, no retries.
func Dial(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus session: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.SlaveId = cfg.SlaveID

	// The handler has a single deadline field, read per operation: connect
	// under the connect timeout, then switch to the per-request timeout.
	h.Timeout = cfg.ConnectTimeout
	if err := h.Connect(); err != nil {
		return nil, err
	}
	h.Timeout = cfg.RequestTimeout

	return &Client{handler: h, api: modbus.NewClient(h)}, nil
}

// ReadWords reads count holding registers starting at start. Registers
// arrive as big-endian byte pairs and are repacked into words.
func (c *Client) ReadWords(start, count uint16) ([]uint16, error) {
	payload, err := c.api.ReadHoldingRegisters(start, count)
	if err != nil {
		return nil, err
	}
	if len(payload) < int(count)*2 {
		return nil, errors.New("modbus session: short response")
	}

	words := make([]uint16, count)
	for i := range words {
		words[i] = uint16(payload[2*i])<<8 | uint16(payload[2*i+1])
	}
	return words, nil
}

// Close closes the TCP connection.
func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	return c.handler.Close()
}
