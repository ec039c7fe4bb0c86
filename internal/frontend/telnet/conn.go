// Package telnet serves arena skirmishes over line-mode Telnet.
package telnet

import (
	"bufio"
	"bytes"
	"net"
	"sync"
	"time"
)

// Telnet command bytes (RFC 854).
const (
	IAC  byte = 255
	DONT byte = 254
	DO   byte = 253
	WONT byte = 252
	WILL byte = 251
	SB   byte = 250
	GA   byte = 249
	NOP  byte = 241
	SE   byte = 240

	OptEcho            byte = 1
	OptSuppressGoAhead byte = 3
	OptLinemode        byte = 34
)

// Conn is a Telnet connection read and written a line at a time. Option
// negotiation sent by the client is consumed and ignored.
//
// Conn satisfies console.Lines.
type Conn struct {
	raw    net.Conn
	reader *bufio.Reader
	mu     sync.Mutex

	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewConn wraps raw. Zero timeouts disable the corresponding deadline.
//
// Precondition: raw must be an open connection.
func NewConn(raw net.Conn, readTimeout, writeTimeout time.Duration) *Conn {
	return &Conn{
		raw:          raw,
		reader:       bufio.NewReaderSize(raw, 4096),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Negotiate announces that the server suppresses go-ahead.
func (c *Conn) Negotiate() error {
	return c.writeRaw([]byte{IAC, WILL, OptSuppressGoAhead})
}

// ReadLine returns the next line of text without its CR, LF, or CRLF
// terminator. Telnet commands and control characters other than tab are
// dropped; an escaped IAC is dropped as well.
//
// Postcondition: Returns the line, or the partial line and the read error.
func (c *Conn) ReadLine() (string, error) {
	if c.readTimeout > 0 {
		_ = c.raw.SetReadDeadline(time.Now().Add(c.readTimeout))
	}

	var line bytes.Buffer
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			return line.String(), err
		}
		switch {
		case b == IAC:
			if err := c.skipCommand(); err != nil {
				return line.String(), err
			}
		case b == '\n':
			return line.String(), nil
		case b == '\r':
			if next, err := c.reader.Peek(1); err == nil && next[0] == '\n' {
				_, _ = c.reader.ReadByte()
			}
			return line.String(), nil
		case b < 32 && b != '\t':
			// other control characters are dropped
		default:
			line.WriteByte(b)
		}
	}
}

// skipCommand consumes the remainder of a command whose IAC was just read.
func (c *Conn) skipCommand() error {
	cmd, err := c.reader.ReadByte()
	if err != nil {
		return err
	}
	switch cmd {
	case WILL, WONT, DO, DONT:
		_, err = c.reader.ReadByte()
		return err
	case SB:
		return c.skipSubnegotiation()
	default:
		return nil
	}
}

func (c *Conn) skipSubnegotiation() error {
	prevIAC := false
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			return err
		}
		if prevIAC && b == SE {
			return nil
		}
		prevIAC = b == IAC && !prevIAC
	}
}

// WriteLine sends text followed by CRLF. Literal 0xFF bytes are escaped.
func (c *Conn) WriteLine(text string) error {
	return c.writeRaw(append(escapeIAC([]byte(text)), '\r', '\n'))
}

// WritePrompt sends text without a line terminator.
func (c *Conn) WritePrompt(text string) error {
	return c.writeRaw(escapeIAC([]byte(text)))
}

func (c *Conn) writeRaw(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeTimeout > 0 {
		_ = c.raw.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	_, err := c.raw.Write(data)
	return err
}

// Close closes the underlying connection, unblocking any pending ReadLine.
func (c *Conn) Close() error {
	return c.raw.Close()
}

// RemoteAddr returns the client's address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.raw.RemoteAddr()
}

func escapeIAC(data []byte) []byte {
	if bytes.IndexByte(data, IAC) < 0 {
		return data
	}
	return bytes.ReplaceAll(data, []byte{IAC}, []byte{IAC, IAC})
}
