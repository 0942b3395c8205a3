package protocol

import "bytes"

// CRC16 computes the frame checksum: CRC-16/CCITT with the reflected
// polynomial 0x8408 and initial value 0xFFFF, matching avr-libc's
// _crc_ccitt_update.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		b ^= uint8(crc & 0xFF)
		b ^= b << 4
		b16 := uint16(b)
		crc = (b16<<8 | crc>>8) ^ (b16 >> 4) ^ (b16 << 3)
	}
	return crc
}

// Frame is one validated frame. Payload aliases the scanned input.
type Frame struct {
	Seq     uint8
	Payload []byte
}

// IsAck reports whether the frame carries no commands.
func (f Frame) IsAck() bool {
	return len(f.Payload) == 0
}

// Scanner finds frames in a byte stream. After a malformed frame it drops
// input up to the next sync byte.
type Scanner struct {
	desync bool

	// OnResync is called each time the scanner regains sync.
	OnResync func()
}

// Synced reports whether the scanner is aligned on a frame boundary.
func (s *Scanner) Synced() bool {
	return !s.desync
}

// Reset puts the scanner back in sync.
func (s *Scanner) Reset() {
	s.desync = false
}

// Next scans data for the next valid frame. It returns the number of bytes
// of data the caller may discard. When ok is false no complete frame is
// available and the bytes that remain after n are the start of a partial
// frame.
func (s *Scanner) Next(data []byte) (f Frame, n int, ok bool) {
	i := 0
	for i < len(data) {
		if s.desync {
			j := bytes.IndexByte(data[i:], SyncByte)
			if j < 0 {
				return Frame{}, len(data), false
			}
			i += j + 1
			s.desync = false
			if s.OnResync != nil {
				s.OnResync()
			}
			continue
		}

		rest := data[i:]
		if rest[0] == SyncByte {
			i++
			continue
		}
		if len(rest) < FrameMin {
			break
		}
		size := int(rest[posLen])
		if size < FrameMin || size > FrameMax || rest[posSeq]&^SeqMask != SeqDest {
			s.desync = true
			continue
		}
		if len(rest) < size {
			break
		}
		if rest[size-1] != SyncByte {
			s.desync = true
			continue
		}
		crc := uint16(rest[size-TrailerSize])<<8 | uint16(rest[size-TrailerSize+1])
		if crc != CRC16(rest[:size-TrailerSize]) {
			s.desync = true
			continue
		}
		return Frame{Seq: rest[posSeq], Payload: rest[HeaderSize : size-TrailerSize]}, i + size, true
	}
	return Frame{}, i, false
}

// WriteFrame encodes one frame into output. body writes the payload and
// may be nil for an acknowledgement.
func WriteFrame(output OutputBuffer, seq uint8, body func(output OutputBuffer)) error {
	start := output.CurPosition()
	output.Output([]byte{0, seq})
	if body != nil {
		body(output)
	}

	size := len(output.DataSince(start)) + TrailerSize
	if size > FrameMax {
		return ErrBufferTooSmall
	}
	output.Update(start+posLen, uint8(size))

	crc := CRC16(output.DataSince(start))
	output.Output([]byte{uint8(crc >> 8), uint8(crc), SyncByte})
	if len(output.DataSince(start)) != size {
		return ErrBufferTooSmall
	}
	return nil
}
