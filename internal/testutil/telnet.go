// Package testutil holds helpers shared by network integration tests.
package testutil

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"
	"testing"
	"time"
)

// negotiationLen is the size of the IAC WILL SUPPRESS-GO-AHEAD greeting every
// arena telnet session opens with.
const negotiationLen = 3

// TelnetClient is a line-oriented client for driving a telnet acceptor from
// tests.
type TelnetClient struct {
	conn   net.Conn
	reader *bufio.Reader
	t      testing.TB
}

// NewTelnetClient dials addr and consumes the server's option negotiation.
// The connection is closed on test cleanup.
//
// Precondition: addr must be a listening "host:port".
// Postcondition: Returns a connected client or fails the test.
func NewTelnetClient(t testing.TB, addr string) *TelnetClient {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		t.Fatalf("connecting to %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	c := &TelnetClient{conn: conn, reader: bufio.NewReader(conn), t: t}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	neg := make([]byte, negotiationLen)
	if _, err := io.ReadFull(c.reader, neg); err != nil {
		t.Fatalf("reading negotiation from %s: %v", addr, err)
	}
	return c
}

// ReadUntil reads until substr has been seen or timeout elapses and returns
// everything read, including the match.
//
// Precondition: substr must be non-empty.
func (c *TelnetClient) ReadUntil(substr string, timeout time.Duration) string {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))

	var buf strings.Builder
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			c.t.Fatalf("reading until %q: got %q, error: %v", substr, buf.String(), err)
		}
		buf.WriteByte(b)
		if strings.HasSuffix(buf.String(), substr) {
			return buf.String()
		}
	}
}

// ReadAll reads until the server closes the connection or timeout elapses.
func (c *TelnetClient) ReadAll(timeout time.Duration) string {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))
	out, err := io.ReadAll(c.reader)
	if err != nil {
		c.t.Fatalf("reading to EOF: got %q, error: %v", out, err)
	}
	return string(out)
}

// Send writes text followed by CRLF.
func (c *TelnetClient) Send(text string) {
	c.t.Helper()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if _, err := fmt.Fprintf(c.conn, "%s\r\n", text); err != nil {
		c.t.Fatalf("sending %q: %v", text, err)
	}
}

// Close closes the connection.
func (c *TelnetClient) Close() {
	_ = c.conn.Close()
}
