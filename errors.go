// errors.go

// Copyright (C) 2018  Steve Merrony

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package bebop

import "fmt"

// ConnErrorKind says why a connection to the drone failed
type ConnErrorKind uint8

// Connection error kinds...
const (
	NoResponse  ConnErrorKind = iota // the handshake stream closed before a reply
	SocketError                      // the underlying network operation failed
)

var connErrorString = map[ConnErrorKind]string{
	NoResponse:  "no response to handshake",
	SocketError: "socket error",
}

// ConnectionError is returned when the session cannot be established, or when
// a command cannot be transmitted.
type ConnectionError struct {
	Kind ConnErrorKind
	Err  error // may be nil
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bebop: %s: %v", connErrorString[e.Kind], e.Err)
	}
	return fmt.Sprintf("bebop: %s", connErrorString[e.Kind])
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Is matches any ConnectionError of the same Kind, so errors.Is(err, ErrNoResponse) works.
func (e *ConnectionError) Is(target error) bool {
	t, ok := target.(*ConnectionError)
	return ok && t.Kind == e.Kind
}

// ConfigErrorKind says which setting was rejected
type ConfigErrorKind uint8

// Config error kinds...
const (
	InvalidUpdateRate ConfigErrorKind = iota
)

var configErrorString = map[ConfigErrorKind]string{
	InvalidUpdateRate: "update rate must be a positive number of updates per second",
}

// ConfigError is returned before any network activity if the Config is unusable.
type ConfigError struct {
	Kind  ConfigErrorKind
	Value int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("bebop: %s (got %d)", configErrorString[e.Kind], e.Value)
}

// Is matches any ConfigError of the same Kind.
func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	return ok && t.Kind == e.Kind
}

// Sentinels for use with errors.Is
var (
	ErrNoResponse        = &ConnectionError{Kind: NoResponse}
	ErrSocket            = &ConnectionError{Kind: SocketError}
	ErrInvalidUpdateRate = &ConfigError{Kind: InvalidUpdateRate}
)

func socketError(err error) error {
	return &ConnectionError{Kind: SocketError, Err: err}
}
