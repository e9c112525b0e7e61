// video.go

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
	"errors"
	"io"
	"log"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Workiva/go-datastructures/queue"
)

const maxVideoDatagram = 65535

// ErrVideoTimeout is returned by VideoStream.Poll when no datagram arrived in time
var ErrVideoTimeout = queue.ErrTimeout

// VideoStream receives the raw video datagrams sent by the drone.
// Datagrams are passed on whole and uninterpreted, in arrival order.
// If the consumer falls behind, new datagrams are dropped rather than
// blocking the listener.
type VideoStream struct {
	conn      *net.UDPConn
	q         *queue.Queue
	size      int64
	dropped   uint64 // atomic
	closeOnce sync.Once
	done      chan struct{}
}

// VideoConnect starts listening on the stream port announced in the handshake.
// The stream is closed by VideoDisconnect or Shutdown.
func (bebop *Bebop) VideoConnect() (*VideoStream, error) {
	bebop.videoMu.Lock()
	defer bebop.videoMu.Unlock()
	if bebop.video != nil {
		return nil, errors.New("Video already connected")
	}
	vs, err := listenVideo(bebop.cfg.StreamPort, bebop.cfg.VideoBufferSize)
	if err != nil {
		return nil, err
	}
	bebop.video = vs
	return vs, nil
}

// VideoDisconnect closes the video stream, if there is one
func (bebop *Bebop) VideoDisconnect() {
	bebop.videoMu.Lock()
	defer bebop.videoMu.Unlock()
	if bebop.video != nil {
		bebop.video.Close()
		bebop.video = nil
	}
}

func listenVideo(port int, bufferSize int) (*VideoStream, error) {
	localAddr, err := net.ResolveUDPAddr("udp", ":"+strconv.Itoa(port))
	if err != nil {
		return nil, socketError(err)
	}
	conn, err := net.ListenUDP("udp", localAddr)
	if err != nil {
		return nil, socketError(err)
	}
	if bufferSize <= 0 {
		bufferSize = defaultVideoBufferSize
	}
	vs := &VideoStream{
		conn: conn,
		q:    queue.New(int64(bufferSize)),
		size: int64(bufferSize),
		done: make(chan struct{}),
	}
	go vs.listener()
	return vs, nil
}

func (vs *VideoStream) listener() {
	defer close(vs.done)
	for {
		vbuf := make([]byte, maxVideoDatagram)
		n, _, err := vs.conn.ReadFromUDP(vbuf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Printf("Error reading from video channel - %v\n", err)
			continue
		}
		// only this goroutine puts, so the length can only shrink before the Put
		if vs.q.Len() >= vs.size {
			atomic.AddUint64(&vs.dropped, 1)
			continue
		}
		if err = vs.q.Put(vbuf[:n]); err != nil {
			return // disposed
		}
	}
}

// Read blocks until the next datagram is available.
// It returns io.EOF once the stream has been closed.
func (vs *VideoStream) Read() ([]byte, error) {
	return vs.Poll(0)
}

// Poll waits up to timeout for the next datagram, a zero timeout waits forever.
// It returns ErrVideoTimeout if nothing arrived, or io.EOF once the stream has been closed.
func (vs *VideoStream) Poll(timeout time.Duration) ([]byte, error) {
	items, err := vs.q.Poll(1, timeout)
	switch {
	case errors.Is(err, queue.ErrDisposed):
		return nil, io.EOF
	case err != nil:
		return nil, err
	}
	return items[0].([]byte), nil
}

// Dropped returns how many datagrams were discarded because the buffer was full
func (vs *VideoStream) Dropped() uint64 {
	return atomic.LoadUint64(&vs.dropped)
}

// LocalAddr returns the address the stream is listening on
func (vs *VideoStream) LocalAddr() net.Addr {
	return vs.conn.LocalAddr()
}

// Close stops the listener and wakes any blocked Read
func (vs *VideoStream) Close() (err error) {
	vs.closeOnce.Do(func() {
		err = vs.conn.Close()
		vs.q.Dispose()
		<-vs.done
	})
	return err
}
