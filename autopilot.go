// autopilot.go

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
	"log"
	"time"
)

// CancelMove stops any in-flight MoveFor manoeuvre.
// The drone should return to a hover.
func (bebop *Bebop) CancelMove() {
	bebop.autoMoveMu.Lock()
	defer bebop.autoMoveMu.Unlock()
	if bebop.autoMoveStop == nil {
		return
	}
	close(bebop.autoMoveStop)
	bebop.autoMoveStop = nil
	bebop.Hover()
}

// MoveFor applies the piloting intent pi for duration d and then hovers.
// The func returns immediately and a Goroutine handles the timing.
// The caller may optionally listen on the 'done' channel for a signal that
// the manoeuvre is complete (may have been cancelled).
func (bebop *Bebop) MoveFor(pi PilotingIntent, d time.Duration) (done chan bool, err error) {
	if d <= 0 {
		return nil, errors.New("Manoeuvre duration must be positive")
	}

	// are we already manoeuvring?
	bebop.autoMoveMu.Lock()
	if bebop.autoMoveStop != nil {
		bebop.autoMoveMu.Unlock()
		return nil, errors.New("Already manoeuvring")
	}
	stop := make(chan struct{})
	bebop.autoMoveStop = stop
	bebop.SetIntent(pi)
	bebop.autoMoveMu.Unlock()

	done = make(chan bool, 1) // buffered so send doesn't block

	go func() {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-stop:
			log.Println("Manoeuvre cancelled")
		case <-timer.C:
			bebop.autoMoveMu.Lock()
			if bebop.autoMoveStop == stop {
				bebop.autoMoveStop = nil
				bebop.Hover()
			}
			bebop.autoMoveMu.Unlock()
		}
		done <- true
	}()

	return done, nil
}
