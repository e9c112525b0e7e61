// video_test.go

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
	"bytes"
	"errors"
	"io"
	"net"
	"testing"
	"time"
)

func sendTo(t *testing.T, addr net.Addr, datagrams ...[]byte) {
	t.Helper()
	port := addr.(*net.UDPAddr).Port
	conn, err := net.DialUDP("udp", nil, &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: port})
	if err != nil {
		t.Fatalf("DialUDP failed with error %v", err)
	}
	defer conn.Close()
	for _, d := range datagrams {
		if _, err = conn.Write(d); err != nil {
			t.Fatalf("Write failed with error %v", err)
		}
	}
}

func TestVideoStream(t *testing.T) {
	cfg := testConfig()
	cfg.StreamPort = 0
	bebop := newBebop(cfg, &recordingConn{})

	vs, err := bebop.VideoConnect()
	if err != nil {
		t.Fatalf("VideoConnect failed with error %v", err)
	}
	if _, err = bebop.VideoConnect(); err == nil {
		t.Error("Second VideoConnect was accepted")
	}

	frames := [][]byte{{0, 0, 0, 1, 0x67}, {0, 0, 0, 1, 0x68}, {0xff}}
	sendTo(t, vs.LocalAddr(), frames...)
	for i, want := range frames {
		got, err := vs.Poll(time.Second)
		if err != nil {
			t.Fatalf("Poll %d failed with error %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("Datagram %d = % x, want % x", i, got, want)
		}
	}

	if _, err = vs.Poll(20 * time.Millisecond); !errors.Is(err, ErrVideoTimeout) {
		t.Errorf("Poll on empty stream gave %v", err)
	}

	bebop.VideoDisconnect()
	if _, err = vs.Read(); err != io.EOF {
		t.Errorf("Read after disconnect gave %v", err)
	}
}

func TestVideoStreamDropsWhenFull(t *testing.T) {
	vs, err := listenVideo(0, 2)
	if err != nil {
		t.Fatalf("listenVideo failed with error %v", err)
	}
	defer vs.Close()

	sendTo(t, vs.LocalAddr(), []byte{1}, []byte{2}, []byte{3}, []byte{4})
	deadline := time.Now().Add(time.Second)
	for vs.Dropped() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if d := vs.Dropped(); d != 2 {
		t.Errorf("Dropped() = %d, want 2", d)
	}
	if got, _ := vs.Read(); !bytes.Equal(got, []byte{1}) {
		t.Errorf("Oldest datagram = % x, want 01", got)
	}
}

func TestShutdownClosesVideo(t *testing.T) {
	cfg := testConfig()
	cfg.StreamPort = 0
	bebop := newBebop(cfg, &recordingConn{})
	vs, err := bebop.VideoConnect()
	if err != nil {
		t.Fatalf("VideoConnect failed with error %v", err)
	}

	readErr := make(chan error, 1)
	go func() {
		_, err := vs.Read()
		readErr <- err
	}()
	bebop.Shutdown()
	select {
	case err = <-readErr:
		if err != io.EOF {
			t.Errorf("Blocked Read returned %v", err)
		}
	case <-time.After(time.Second):
		t.Error("Blocked Read not woken by Shutdown")
	}
}
