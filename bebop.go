// bebop.go

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
	"context"
	"io"
	"log"
	"net"
	"sync"
	"time"
)

// Bebop holds the current state of a session with a Parrot Bebop drone
type Bebop struct {
	cfg Config

	ctrlMu   sync.Mutex     // this mutex protects the control fields, hold it to build-and-send a frame
	ctrlConn io.WriteCloser // nil once shut down
	ctrlSeq  sequencer

	pcmdMu sync.RWMutex // this mutex protects the piloting intent
	pcmd   PilotingIntent

	stopChan chan struct{} // closed by Shutdown
	stopOnce sync.Once
	loopDone chan struct{} // closed when the piloting loop exits
	errMu    sync.Mutex
	loopErr  error

	videoMu sync.Mutex
	video   *VideoStream

	autoMoveMu   sync.Mutex
	autoMoveStop chan struct{} // non-nil while a MoveFor manoeuvre is in flight

	handshakeReply string
}

func newBebop(cfg Config, conn io.WriteCloser) *Bebop {
	return &Bebop{
		cfg:      cfg,
		ctrlConn: conn,
		stopChan: make(chan struct{}),
	}
}

// Connect performs the handshake with the drone described by cfg, opens the
// command socket, asks the drone for its states and settings, enables video
// and starts sending piloting commands UpdateRate times a second.
// The handshake read has no timeout of its own; cancel ctx to abandon it.
func Connect(ctx context.Context, cfg Config) (*Bebop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("Attempting to connect to Bebop at %s\n", cfg.Address)
	reply, err := handshake(ctx, cfg)
	if err != nil {
		log.Printf("Connection failed - %v\n", err)
		return nil, err
	}
	log.Printf("Handshake response from Bebop: %s\n", reply)

	conn, err := dialCommand(cfg)
	if err != nil {
		return nil, err
	}
	bebop := newBebop(cfg, conn)
	bebop.handshakeReply = reply

	for _, cmd := range [][]byte{allStatesCommand(), allSettingsCommand(), videoEnableCommand(true)} {
		if err = bebop.sendCommand(ftDataWithAck, bufAck, cmd); err != nil {
			conn.Close()
			return nil, err
		}
	}

	bebop.startPilotingLoop()
	return bebop, nil
}

// ConnectDefault attempts to connect to a Bebop using DefaultConfig()
func ConnectDefault(ctx context.Context) (*Bebop, error) {
	return Connect(ctx, DefaultConfig())
}

// Shutdown stops the piloting loop, waiting at most one update period for it,
// then closes the video and command sockets.
// It is safe to call more than once.
func (bebop *Bebop) Shutdown() error {
	bebop.CancelMove()
	bebop.stopOnce.Do(func() { close(bebop.stopChan) })
	if bebop.loopDone != nil {
		<-bebop.loopDone
	}

	bebop.videoMu.Lock()
	if bebop.video != nil {
		bebop.video.Close()
		bebop.video = nil
	}
	bebop.videoMu.Unlock()

	bebop.ctrlMu.Lock()
	defer bebop.ctrlMu.Unlock()
	if bebop.ctrlConn == nil {
		return nil
	}
	err := bebop.ctrlConn.Close()
	bebop.ctrlConn = nil
	return err
}

// HandshakeResponse returns the line the drone sent back during Connect
func (bebop *Bebop) HandshakeResponse() string {
	return bebop.handshakeReply
}

// Done returns a channel which is closed when the piloting loop has stopped,
// either after Shutdown or because a piloting command could not be sent.
func (bebop *Bebop) Done() <-chan struct{} {
	return bebop.loopDone
}

// Err returns the error which stopped the piloting loop, or nil
func (bebop *Bebop) Err() error {
	bebop.errMu.Lock()
	defer bebop.errMu.Unlock()
	return bebop.loopErr
}

// Move replaces the piloting intent, it is sent with the next piloting command.
// Values should be between -100 and 100, they are not checked here.
func (bebop *Bebop) Move(flag bool, roll, pitch, yaw, gaz int) {
	bebop.SetIntent(PilotingIntent{Flag: flag, Roll: roll, Pitch: pitch, Yaw: yaw, Gaz: gaz})
}

// SetIntent does a one-off replacement of the whole piloting intent
func (bebop *Bebop) SetIntent(pi PilotingIntent) {
	bebop.pcmdMu.Lock()
	bebop.pcmd = pi
	bebop.pcmdMu.Unlock()
}

// Intent returns a copy of the current piloting intent
func (bebop *Bebop) Intent() PilotingIntent {
	bebop.pcmdMu.RLock()
	pi := bebop.pcmd
	bebop.pcmdMu.RUnlock()
	return pi
}

func (bebop *Bebop) startPilotingLoop() {
	bebop.loopDone = make(chan struct{})
	go bebop.pilotingLoop(bebop.cfg.updatePeriod())
}

// pilotingLoop sends the current intent once per period until stopChan is
// closed or a send fails. Stopping is only noticed between sends.
func (bebop *Bebop) pilotingLoop(period time.Duration) {
	defer close(bebop.loopDone)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-bebop.stopChan:
			log.Println("Piloting loop stopped")
			return
		default:
		}

		if err := bebop.sendPCMD(); err != nil {
			log.Printf("Piloting loop stopped - %v\n", err)
			bebop.errMu.Lock()
			bebop.loopErr = err
			bebop.errMu.Unlock()
			return
		}

		select {
		case <-bebop.stopChan:
			log.Println("Piloting loop stopped")
			return
		case <-ticker.C:
		}
	}
}

func (bebop *Bebop) sendPCMD() error {
	bebop.ctrlMu.Lock()
	defer bebop.ctrlMu.Unlock()
	return bebop.writeFrame(ftData, bufNonAck, pcmdCommand(bebop.Intent()))
}

// sendCommand transmits a one-shot command on the given channel
func (bebop *Bebop) sendCommand(ft frameType, id bufferID, cmd []byte) error {
	bebop.ctrlMu.Lock()
	defer bebop.ctrlMu.Unlock()
	return bebop.writeFrame(ft, id, cmd)
}

// writeFrame must be called with ctrlMu held
func (bebop *Bebop) writeFrame(ft frameType, id bufferID, cmd []byte) error {
	if bebop.ctrlConn == nil {
		return socketError(net.ErrClosed)
	}
	seq := bebop.ctrlSeq.next(id)
	if _, err := bebop.ctrlConn.Write(encodeFrame(ft, id, seq, cmd)); err != nil {
		return socketError(err)
	}
	return nil
}
