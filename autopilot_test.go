// autopilot_test.go

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
	"testing"
	"time"
)

func TestMoveFor(t *testing.T) {
	bebop := newBebop(testConfig(), &recordingConn{})

	pi := PilotingIntent{Flag: true, Pitch: 30}
	done, err := bebop.MoveFor(pi, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("MoveFor failed with error %v", err)
	}
	if got := bebop.Intent(); got != pi {
		t.Errorf("Intent during manoeuvre = %+v", got)
	}
	if _, err = bebop.MoveFor(pi, time.Second); err == nil {
		t.Error("Second concurrent MoveFor was accepted")
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Manoeuvre never completed")
	}
	if got := bebop.Intent(); got != (PilotingIntent{}) {
		t.Errorf("Intent after manoeuvre = %+v, want hover", got)
	}
}

func TestCancelMove(t *testing.T) {
	bebop := newBebop(testConfig(), &recordingConn{})

	done, err := bebop.MoveFor(PilotingIntent{Yaw: 50}, time.Hour)
	if err != nil {
		t.Fatalf("MoveFor failed with error %v", err)
	}
	bebop.CancelMove()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Cancelled manoeuvre never completed")
	}
	if got := bebop.Intent(); got != (PilotingIntent{}) {
		t.Errorf("Intent after cancel = %+v, want hover", got)
	}

	// a new manoeuvre must not be disturbed by the cancelled one
	pi := PilotingIntent{Gaz: 20}
	done, err = bebop.MoveFor(pi, time.Hour)
	if err != nil {
		t.Fatalf("MoveFor after cancel failed with error %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if got := bebop.Intent(); got != pi {
		t.Errorf("Intent = %+v, want %+v", got, pi)
	}
	bebop.CancelMove()
	<-done
}

func TestMoveForRejectsBadDuration(t *testing.T) {
	bebop := newBebop(testConfig(), &recordingConn{})
	if _, err := bebop.MoveFor(PilotingIntent{}, 0); err == nil {
		t.Error("Zero duration accepted")
	}
}
