// messages_test.go

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
	"encoding/binary"
	"testing"
)

func TestEncodeTakeOffFrame(t *testing.T) {
	b := encodeFrame(ftDataWithAck, bufAck, 1, takeOffCommand())

	correct := []byte{4, 11, 1, 0x0b, 0, 0, 0, projARDrone3, classARDrone3Piloting, cmdTakeOff, 0}

	if !bytes.Equal(correct, b) {
		t.Errorf("Buffer encoding incorrect, got % x", b)
	}
}

func TestEncodeFrameLength(t *testing.T) {
	for n := 0; n <= 16; n++ {
		payload := bytes.Repeat([]byte{0xaa}, n)
		b := encodeFrame(ftData, bufNonAck, 7, payload)
		if len(b) != n+frameHdrSize {
			t.Fatalf("payload %d: frame length %d", n, len(b))
		}
		if l := binary.LittleEndian.Uint32(b[3:7]); l != uint32(n+7) {
			t.Errorf("payload %d: encoded total length %d, want %d", n, l, n+7)
		}
		if !bytes.Equal(b[frameHdrSize:], payload) {
			t.Errorf("payload %d: payload not copied", n)
		}
	}
}

func TestCommandPayloads(t *testing.T) {
	tests := []struct {
		name string
		cmd  []byte
		want []byte
	}{
		{"all states", allStatesCommand(), []byte{0, 4, 0, 0}},
		{"all settings", allSettingsCommand(), []byte{0, 2, 0, 0}},
		{"video enable", videoEnableCommand(true), []byte{1, 21, 0, 0, 1}},
		{"video disable", videoEnableCommand(false), []byte{1, 21, 0, 0, 0}},
		{"flat trim", flatTrimCommand(), []byte{1, 0, 0, 0}},
		{"takeoff", takeOffCommand(), []byte{1, 0, 1, 0}},
		{"landing", landingCommand(), []byte{1, 0, 3, 0}},
		{"emergency", emergencyCommand(), []byte{1, 0, 4, 0}},
		{"pcmd", pcmdCommand(PilotingIntent{}), []byte{1, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !bytes.Equal(tt.cmd, tt.want) {
				t.Errorf("got % x, want % x", tt.cmd, tt.want)
			}
		})
	}
}

func TestCommandsAreFresh(t *testing.T) {
	a := takeOffCommand()
	a[0] = 0xff
	if b := takeOffCommand(); b[0] != projARDrone3 {
		t.Error("Command buffer shared between calls")
	}
}

func TestPCMDPayload(t *testing.T) {
	cmd := pcmdCommand(PilotingIntent{Flag: true, Roll: -10})
	if len(cmd) != 13 {
		t.Fatalf("PCMD length %d, want 13", len(cmd))
	}
	if !bytes.Equal(cmd[4:9], []byte{1, 246, 0, 0, 0}) {
		t.Errorf("PCMD args % x", cmd[4:9])
	}
	if !bytes.Equal(cmd[9:], []byte{0, 0, 0, 0}) {
		t.Errorf("PCMD reserved bytes % x", cmd[9:])
	}

	cmd = pcmdCommand(PilotingIntent{Roll: 100, Pitch: -100, Yaw: 1, Gaz: -1})
	if !bytes.Equal(cmd[4:9], []byte{0, 100, 156, 1, 255}) {
		t.Errorf("PCMD args % x", cmd[4:9])
	}
}

func TestPCMDByteRoundTrip(t *testing.T) {
	for v := -100; v <= 100; v++ {
		b := pcmdByte(v)
		if int(int8(b)) != v {
			t.Errorf("%d encoded as %d, decodes to %d", v, b, int8(b))
		}
		if v < 0 && int(b) != 256+v {
			t.Errorf("%d encoded as %d, want %d", v, b, 256+v)
		}
	}
}

func TestSequencerWrap(t *testing.T) {
	var s sequencer
	for _, id := range []bufferID{0, bufNonAck, bufAck, 255} {
		for i := 1; i <= 256; i++ {
			got := s.next(id)
			if want := uint8(i % 256); got != want {
				t.Fatalf("channel %d call %d: got %d, want %d", id, i, got, want)
			}
		}
	}
}

func TestSequencerChannelsIndependent(t *testing.T) {
	var s sequencer
	s.next(bufAck)
	s.next(bufAck)
	if got := s.next(bufNonAck); got != 1 {
		t.Errorf("first sequence on fresh channel %d, want 1", got)
	}
	if got := s.next(bufAck); got != 3 {
		t.Errorf("third sequence on channel %d, want 3", got)
	}
}
