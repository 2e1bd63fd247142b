package net

import (
	"context"
	"encoding/json"
	"net"
	"sync"
)

// JSONConn implements Conn over a stream connection, one JSON object per
// line.
type JSONConn struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
	mu   sync.Mutex // serializes writes
}

// NewJSONConn wraps the given connection.
func NewJSONConn(conn net.Conn) *JSONConn {
	return &JSONConn{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
	}
}

// Send implements Conn. The context is not consulted; closing the
// connection unblocks a pending write.
func (c *JSONConn) Send(ctx context.Context, msg ServerMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enc.Encode(msg)
}

// Recv implements Conn.
func (c *JSONConn) Recv(ctx context.Context) (ClientMessage, error) {
	var msg ClientMessage
	err := c.dec.Decode(&msg)
	return msg, err
}

// Close closes the underlying connection.
func (c *JSONConn) Close() error {
	return c.conn.Close()
}
