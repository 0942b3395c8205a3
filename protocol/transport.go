package protocol

// Handler decodes the arguments of one command from args and acts on it.
type Handler func(cmdID uint16, args *[]byte) error

// Transport is the firmware end of the link. It is driven from a single
// loop: feed received bytes to Receive and flush the output buffer after.
type Transport struct {
	scan    Scanner
	next    uint8
	output  OutputBuffer
	handler Handler

	// OnReset is called when the host restarts its sequence.
	OnReset func()
	// OnError receives handler errors. The rest of that frame is skipped.
	OnError func(error)
}

func NewTransport(output OutputBuffer, handler Handler) *Transport {
	t := &Transport{
		next:    SeqDest,
		output:  output,
		handler: handler,
	}
	t.scan.OnResync = t.ack
	return t
}

// Receive consumes every complete frame in input. Each frame is acked with
// the sequence number expected next, so an out-of-order frame is answered
// with a nak.
func (t *Transport) Receive(input InputBuffer) {
	for {
		f, n, ok := t.scan.Next(input.Data())
		if ok {
			t.handle(f)
		}
		input.Pop(n)
		if !ok {
			return
		}
	}
}

func (t *Transport) handle(f Frame) {
	if f.Seq == SeqDest && t.next != SeqDest {
		t.next = SeqDest
		if t.OnReset != nil {
			t.OnReset()
		}
	}
	if f.Seq == t.next {
		t.next = NextSeq(f.Seq)
		t.dispatch(f.Payload)
	}
	t.ack()
}

func (t *Transport) dispatch(payload []byte) {
	for len(payload) > 0 {
		cmdID, err := DecodeVLQUint(&payload)
		if err != nil {
			t.scan.desync = true
			return
		}
		if t.handler == nil {
			return
		}
		if err := t.handler(uint16(cmdID), &payload); err != nil {
			if t.OnError != nil {
				t.OnError(err)
			}
			return
		}
	}
}

func (t *Transport) ack() {
	_ = WriteFrame(t.output, t.next, nil)
}

// SendCommand queues a frame holding one command. Responses carry the
// sequence number of the ack that follows them.
func (t *Transport) SendCommand(cmdID uint16, args func(output OutputBuffer)) error {
	return WriteFrame(t.output, t.next, func(output OutputBuffer) {
		EncodeVLQUint(output, uint32(cmdID))
		if args != nil {
			args(output)
		}
	})
}

// NextSequence returns the sequence byte expected in the next host frame.
func (t *Transport) NextSequence() uint8 {
	return t.next
}

// Reset forgets the sequence state, as after the link is reopened.
func (t *Transport) Reset() {
	t.scan.Reset()
	t.next = SeqDest
	if t.OnReset != nil {
		t.OnReset()
	}
}
