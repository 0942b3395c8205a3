package protocol

// InputBuffer is a source of received bytes.
type InputBuffer interface {
	// Data returns the buffered bytes as one contiguous slice.
	Data() []byte

	// Available returns len(Data()).
	Available() int

	// Pop discards n bytes from the front.
	Pop(n int)
}

// OutputBuffer collects encoded bytes.
type OutputBuffer interface {
	Output(data []byte)
	CurPosition() int
	Update(pos int, val byte)
	DataSince(pos int) []byte
}

// SliceInputBuffer implements InputBuffer over a byte slice.
type SliceInputBuffer struct {
	data []byte
}

func NewSliceInputBuffer(data []byte) *SliceInputBuffer {
	return &SliceInputBuffer{data: data}
}

func (s *SliceInputBuffer) Data() []byte {
	return s.data
}

func (s *SliceInputBuffer) Available() int {
	return len(s.data)
}

func (s *SliceInputBuffer) Pop(n int) {
	if n > len(s.data) {
		n = len(s.data)
	}
	s.data = s.data[n:]
}

// ScratchOutput implements OutputBuffer over a fixed buffer allocated once.
// Output past the end is dropped and flagged.
type ScratchOutput struct {
	buf      []byte
	pos      int
	overflow bool
}

// NewScratchOutput returns a ScratchOutput holding up to size bytes.
func NewScratchOutput(size int) *ScratchOutput {
	return &ScratchOutput{buf: make([]byte, size)}
}

func (s *ScratchOutput) Output(data []byte) {
	n := copy(s.buf[s.pos:], data)
	s.pos += n
	if n < len(data) {
		s.overflow = true
	}
}

func (s *ScratchOutput) CurPosition() int {
	return s.pos
}

func (s *ScratchOutput) Update(pos int, val byte) {
	if pos < s.pos {
		s.buf[pos] = val
	}
}

func (s *ScratchOutput) DataSince(pos int) []byte {
	if pos > s.pos {
		return nil
	}
	return s.buf[pos:s.pos]
}

// Result returns everything written since the last Reset.
func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.pos]
}

// Overflowed reports whether any output was dropped since the last Reset.
func (s *ScratchOutput) Overflowed() bool {
	return s.overflow
}

func (s *ScratchOutput) Reset() {
	s.pos = 0
	s.overflow = false
}

// Fifo is a receive buffer. Unread bytes are moved to the front when a
// write needs the room, so Data never copies.
type Fifo struct {
	buf   []byte
	read  int
	write int
}

func NewFifo(capacity int) *Fifo {
	return &Fifo{buf: make([]byte, capacity)}
}

// Write appends as much of data as fits and returns the count.
func (f *Fifo) Write(data []byte) int {
	if f.write+len(data) > len(f.buf) && f.read > 0 {
		f.write = copy(f.buf, f.buf[f.read:f.write])
		f.read = 0
	}
	n := copy(f.buf[f.write:], data)
	f.write += n
	return n
}

func (f *Fifo) Data() []byte {
	return f.buf[f.read:f.write]
}

func (f *Fifo) Available() int {
	return f.write - f.read
}

// Free returns how many bytes the next Write can take.
func (f *Fifo) Free() int {
	return len(f.buf) - f.Available()
}

func (f *Fifo) Pop(n int) {
	f.read += n
	if f.read >= f.write {
		f.read, f.write = 0, 0
	}
}

func (f *Fifo) Reset() {
	f.read, f.write = 0, 0
}
