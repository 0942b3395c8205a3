// Package protocol frames the register link between the avrassist host
// tool and the firmware monitor running on the target.
//
// A frame is
//
//	[len][seq][payload ...][crc hi][crc lo][0x7E]
//
// len counts the whole frame. seq carries 0x10 in its high nibble and a
// four-bit sequence number in its low nibble. The payload is a run of VLQ
// encoded command IDs, each followed by its arguments. A frame with an
// empty payload is an acknowledgement: its seq is the next sequence number
// the sender expects.
package protocol

import "errors"

// Frame layout.
const (
	HeaderSize  = 2
	TrailerSize = 3
	FrameMin    = HeaderSize + TrailerSize
	FrameMax    = 64 // the firmware receive buffer holds one full frame

	posLen = 0
	posSeq = 1

	SyncByte = 0x7E
	SeqDest  = 0x10
	SeqMask  = 0x0F
)

var (
	ErrInvalidVLQ     = errors.New("protocol: invalid VLQ encoding")
	ErrBufferTooSmall = errors.New("protocol: buffer too small")
	ErrBadFrame       = errors.New("protocol: bad frame")
	ErrSequence       = errors.New("protocol: sequence mismatch")
	ErrTimeout        = errors.New("protocol: timeout")
	ErrClosed         = errors.New("protocol: transport closed")
)

// NextSeq returns the sequence byte following seq.
func NextSeq(seq uint8) uint8 {
	return (seq+1)&SeqMask | SeqDest
}
