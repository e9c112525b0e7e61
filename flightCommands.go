// flightCommands.go

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

// TakeOff sends a normal takeoff request to the Bebop
func (bebop *Bebop) TakeOff() error {
	return bebop.sendCommand(ftDataWithAck, bufAck, takeOffCommand())
}

// Land sends a normal Land request to the Bebop
func (bebop *Bebop) Land() error {
	return bebop.sendCommand(ftDataWithAck, bufAck, landingCommand())
}

// Emergency cuts the motors immediately, whatever the Bebop is doing.
// It is sent on the dedicated emergency channel.
func (bebop *Bebop) Emergency() error {
	return bebop.sendCommand(ftDataWithAck, bufEmergency, emergencyCommand())
}

// FlatTrim asks the Bebop to recalibrate its idea of level; it should be on the ground
func (bebop *Bebop) FlatTrim() error {
	return bebop.sendCommand(ftDataWithAck, bufAck, flatTrimCommand())
}

// EnableVideo asks the Bebop to start streaming video to the stream port
// declared during the handshake.  Connect already does this once.
func (bebop *Bebop) EnableVideo() error {
	return bebop.sendCommand(ftDataWithAck, bufAck, videoEnableCommand(true))
}

// DisableVideo asks the Bebop to stop streaming video
func (bebop *Bebop) DisableVideo() error {
	return bebop.sendCommand(ftDataWithAck, bufAck, videoEnableCommand(false))
}

// *** The following are 'macro' commands which are here purely
// *** to make the Bebop easier to use in some circumstances.

// Hover simply zeroes the piloting intent - useful as a panic action!
func (bebop *Bebop) Hover() {
	bebop.SetIntent(PilotingIntent{})
}

func pctToSpeed(pct int) int {
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// Forward tells the drone to start moving forward at a given speed between 0 and 100
func (bebop *Bebop) Forward(pct int) {
	bebop.Move(true, 0, pctToSpeed(pct), 0, 0)
}

// Backward tells the drone to start moving backward at a given speed between 0 and 100
func (bebop *Bebop) Backward(pct int) {
	bebop.Move(true, 0, -pctToSpeed(pct), 0, 0)
}

// Left tells the drone to start moving left at a given speed between 0 and 100
func (bebop *Bebop) Left(pct int) {
	bebop.Move(true, -pctToSpeed(pct), 0, 0, 0)
}

// Right tells the drone to start moving right at a given speed between 0 and 100
func (bebop *Bebop) Right(pct int) {
	bebop.Move(true, pctToSpeed(pct), 0, 0, 0)
}

// Up tells the drone to start climbing at a given speed between 0 and 100
func (bebop *Bebop) Up(pct int) {
	bebop.Move(false, 0, 0, 0, pctToSpeed(pct))
}

// Down tells the drone to start descending at a given speed between 0 and 100
func (bebop *Bebop) Down(pct int) {
	bebop.Move(false, 0, 0, 0, -pctToSpeed(pct))
}

// Clockwise tells the drone to start rotating clockwise at a given speed between 0 and 100
func (bebop *Bebop) Clockwise(pct int) {
	bebop.Move(false, 0, 0, pctToSpeed(pct), 0)
}

// TurnRight is an alias for Clockwise()
func (bebop *Bebop) TurnRight(pct int) {
	bebop.Clockwise(pct)
}

// Anticlockwise tells the drone to start rotating anticlockwise at a given speed between 0 and 100
func (bebop *Bebop) Anticlockwise(pct int) {
	bebop.Move(false, 0, 0, -pctToSpeed(pct), 0)
}

// TurnLeft is an alias for Anticlockwise()
func (bebop *Bebop) TurnLeft(pct int) {
	bebop.Anticlockwise(pct)
}

// CounterClockwise is an alias for Anticlockwise()
func (bebop *Bebop) CounterClockwise(pct int) {
	bebop.Anticlockwise(pct)
}

// *** End of 'macro' commands ***
