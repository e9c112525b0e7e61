// network.go

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

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// handshakeRequest is the single line the drone expects on the discovery port
// before it will accept commands. The ports are sent as strings.
type handshakeRequest struct {
	ControllerType    string `json:"controller_type"`
	ControllerName    string `json:"controller_name"`
	D2CPort           string `json:"d2c_port"`
	StreamPort        string `json:"arstream2_client_stream_port"`
	StreamControlPort string `json:"arstream2_client_control_port"`
}

var marshalHandshake = json.Marshal

func newHandshakeRequest(cfg Config) handshakeRequest {
	return handshakeRequest{
		ControllerType:    cfg.ControllerType,
		ControllerName:    cfg.ControllerName,
		D2CPort:           strconv.Itoa(cfg.D2CPort),
		StreamPort:        strconv.Itoa(cfg.StreamPort),
		StreamControlPort: strconv.Itoa(cfg.StreamControlPort),
	}
}

// handshake declares us to the drone and waits for its one-line reply.
// The reply is not interpreted. There is no read timeout, only cancelling
// ctx will abort a drone that accepts but never answers.
func handshake(ctx context.Context, cfg Config) (reply string, err error) {
	var dialer net.Dialer
	addr := net.JoinHostPort(cfg.Address, strconv.Itoa(cfg.DiscoveryPort))
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return "", socketError(err)
	}
	defer conn.Close()

	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
			conn.SetDeadline(time.Now()) // unblocks the pending Read
		case <-finished:
		}
	}()

	msg, err := marshalHandshake(newHandshakeRequest(cfg))
	if err != nil {
		return "", socketError(err)
	}
	msg = append(msg, '\n')
	if _, err = conn.Write(msg); err != nil {
		return "", handshakeSocketError(ctx, err)
	}

	reply, err = bufio.NewReader(conn).ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && reply != "":
		// an unterminated last line still counts as a reply
	case errors.Is(err, io.EOF):
		return "", &ConnectionError{Kind: NoResponse}
	default:
		return "", handshakeSocketError(ctx, err)
	}
	return strings.TrimRight(reply, "\r\n"), nil
}

// handshakeSocketError reports the cancellation rather than the deadline error it provoked
func handshakeSocketError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return socketError(ctx.Err())
	}
	return socketError(err)
}

// dialCommand opens the datagram socket commands are written to
func dialCommand(cfg Config) (*net.UDPConn, error) {
	droneAddr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(cfg.Address, strconv.Itoa(cfg.CommandPort)))
	if err != nil {
		return nil, socketError(err)
	}
	conn, err := net.DialUDP("udp", nil, droneAddr)
	if err != nil {
		return nil, socketError(err)
	}
	return conn, nil
}
