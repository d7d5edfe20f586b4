package ir

// FakeSource is a test double that returns scripted command codes.
type FakeSource struct {
	// Queue contains scripted codes. Poll returns the head until Resume
	// consumes it.
	Queue []uint32

	// Resumes counts Resume calls, delivered code or not.
	Resumes int

	delivered bool
}

// NewFakeSource creates a FakeSource preloaded with the given codes.
func NewFakeSource(codes ...uint32) *FakeSource {
	return &FakeSource{Queue: codes}
}

// Push appends codes to the script.
func (f *FakeSource) Push(codes ...uint32) {
	f.Queue = append(f.Queue, codes...)
}

// Poll returns the head of the queue, if any. The same code is returned again
// until Resume is called, matching the real receiver's pending-slot behavior.
func (f *FakeSource) Poll() (uint32, bool) {
	if len(f.Queue) == 0 {
		return 0, false
	}
	f.delivered = true
	return f.Queue[0], true
}

// Resume consumes the delivered code, if one was handed out.
func (f *FakeSource) Resume() {
	f.Resumes++
	if f.delivered {
		f.Queue = f.Queue[1:]
		f.delivered = false
	}
}
