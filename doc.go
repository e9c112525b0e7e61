/*Package bebop provides an unofficial, easy-to-use, standalone API for piloting the Parrot Bebop® drone.

Disclaimer

Bebop is a registered trademark of Parrot.  The author(s) of this package is/are in no way affiliated with Parrot.
The package has been developed from the public ARSDK protocol description and by examining data packets sent to the drone.

Use this package at your own risk.  The author(s) is/are in no way responsible for any damage caused either to or by the
drone when using this software.

Features

The following features have been implemented...
  * Session handshake on the discovery port
  * Drone built-in flight commands, eg. TakeOff(), Land(), Emergency()
  * Continuous piloting via Move() or SetIntent(), sent at a configurable rate
  * Macro-level flight control, eg. Forward(), Up()
  * Timed manoeuvres, eg. MoveFor()
  * Raw video stream reception (the stream is not decoded)
  * YAML configuration files
A REST/WebSocket front end is available in the bebopserver package, and a small CLI in cmd/bebopctl.

Concepts

Connection Types

The drone is first contacted over TCP on its discovery port, where we declare who we are and which
UDP ports we listen on.  Once the drone replies, all commands are sent as UDP datagrams to its command port.
An optional video connection receives the H.264 stream on the port declared in the handshake.

Channels and Sequence Numbers

Every command frame is sent on a numbered channel.  One-shot commands such as TakeOff() use the
'acknowledged' channel, the continuous piloting command uses the 'non-acknowledged' channel and Emergency()
has its own channel.  Each channel carries its own 8-bit sequence number.  Acknowledgements from the drone
are not listened for and nothing is retransmitted.

Piloting

After Connect() returns, a Goroutine sends the current piloting intent UpdateRate times a second until
Shutdown() is called.  Move() and the macro commands only replace the intent; the intent is always replaced
as a whole.  If a piloting command cannot be sent the Goroutine stops, Done() is closed and Err() reports why.

*/
package bebop
