// messages.go

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

import "encoding/binary"

// frameType is the delivery class written in byte 0 of every frame
type frameType byte

const (
	ftAck         frameType = 1
	ftData        frameType = 2
	ftLowLatency  frameType = 3
	ftDataWithAck frameType = 4
)

// bufferID identifies a logical channel, each has its own sequence counter
type bufferID byte

// controller-to-drone channels
const (
	bufNonAck    bufferID = 10
	bufAck       bufferID = 11
	bufEmergency bufferID = 12
)

const frameHdrSize = 7 // type, id, seq, 4-byte little-endian total length

// project IDs
const (
	projCommon   = 0
	projARDrone3 = 1
)

// class IDs, per project
const (
	classCommonSettings    = 2
	classCommonCommon      = 4
	classARDrone3Piloting  = 0
	classARDrone3MediaStrm = 21
)

// command IDs, per class
const (
	cmdAllSettings = 0x0000
	cmdAllStates   = 0x0000
	cmdFlatTrim    = 0x0000
	cmdTakeOff     = 0x0001
	cmdPCMD        = 0x0002
	cmdLanding     = 0x0003
	cmdEmergency   = 0x0004
	cmdVideoEnable = 0x0000
)

// opID selects the subsystem and operation a command addresses
type opID struct {
	project byte
	class   byte
	cmd     uint16
}

var (
	opAllStates   = opID{projCommon, classCommonCommon, cmdAllStates}
	opAllSettings = opID{projCommon, classCommonSettings, cmdAllSettings}
	opVideoEnable = opID{projARDrone3, classARDrone3MediaStrm, cmdVideoEnable}
	opFlatTrim    = opID{projARDrone3, classARDrone3Piloting, cmdFlatTrim}
	opTakeOff     = opID{projARDrone3, classARDrone3Piloting, cmdTakeOff}
	opPCMD        = opID{projARDrone3, classARDrone3Piloting, cmdPCMD}
	opLanding     = opID{projARDrone3, classARDrone3Piloting, cmdLanding}
	opEmergency   = opID{projARDrone3, classARDrone3Piloting, cmdEmergency}
)

// PilotingIntent holds the latest piloting command requested by the caller.
// Roll, Pitch, Yaw and Gaz are percentages between -100 and 100.
// Flag must be true for Roll and Pitch to be taken into account by the drone.
type PilotingIntent struct {
	Flag  bool `json:"flag"`
	Roll  int  `json:"roll"`  // -ve is left, +ve is right
	Pitch int  `json:"pitch"` // -ve is backward, +ve is forward
	Yaw   int  `json:"yaw"`   // -ve rotates anticlockwise
	Gaz   int  `json:"gaz"`   // -ve is down, +ve is up
}

// newCommand builds the payload for an operation: project, class, 16-bit
// little-endian command ID, then any arguments.
// A fresh slice is returned on every call.
func newCommand(op opID, args ...byte) []byte {
	cmd := make([]byte, 4+len(args))
	cmd[0] = op.project
	cmd[1] = op.class
	binary.LittleEndian.PutUint16(cmd[2:4], op.cmd)
	copy(cmd[4:], args)
	return cmd
}

func allStatesCommand() []byte   { return newCommand(opAllStates) }
func allSettingsCommand() []byte { return newCommand(opAllSettings) }
func videoEnableCommand(enable bool) []byte {
	return newCommand(opVideoEnable, boolToByte(enable))
}
func flatTrimCommand() []byte  { return newCommand(opFlatTrim) }
func takeOffCommand() []byte   { return newCommand(opTakeOff) }
func landingCommand() []byte   { return newCommand(opLanding) }
func emergencyCommand() []byte { return newCommand(opEmergency) }

// pcmdCommand builds the 13-byte piloting command: header, flag, roll, pitch,
// yaw, gaz, then 4 reserved bytes.
func pcmdCommand(pi PilotingIntent) []byte {
	return newCommand(opPCMD,
		boolToByte(pi.Flag),
		pcmdByte(pi.Roll),
		pcmdByte(pi.Pitch),
		pcmdByte(pi.Yaw),
		pcmdByte(pi.Gaz),
		0, 0, 0, 0)
}

// pcmdByte returns the low 8 bits of v, ie. its two's-complement byte.
// Reading the result back as an int8 recovers any v in -128..127.
func pcmdByte(v int) byte {
	return byte(v & 0xff)
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// encodeFrame wraps a command payload in the wire frame header
func encodeFrame(ft frameType, id bufferID, seq uint8, payload []byte) (buff []byte) {
	frameSize := frameHdrSize + len(payload)
	buff = make([]byte, frameSize)
	buff[0] = byte(ft)
	buff[1] = byte(id)
	buff[2] = seq
	binary.LittleEndian.PutUint32(buff[3:7], uint32(frameSize))
	copy(buff[frameHdrSize:], payload)
	return buff
}

// sequencer keeps one counter per channel. It is not safe for concurrent use,
// callers must hold the control mutex.
type sequencer struct {
	seq [256]uint8
}

// next increments and returns the counter for id, 255 wraps to 0
func (s *sequencer) next(id bufferID) uint8 {
	if s.seq[id] == 255 {
		s.seq[id] = 0
	} else {
		s.seq[id]++
	}
	return s.seq[id]
}
