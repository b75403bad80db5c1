package model

const defaultWindowCap = 300

// RollingWindow is a fixed-size ring buffer of float64 samples. When the
// buffer is full, new pushes overwrite the oldest entry.
type RollingWindow struct {
	buf  []float64
	head int // index of the next write position
	size int // number of valid entries
}

// NewRollingWindow creates a RollingWindow with the given capacity.
// If capacity <= 0, defaultWindowCap (300) is used.
func NewRollingWindow(capacity int) *RollingWindow {
	if capacity <= 0 {
		capacity = defaultWindowCap
	}
	return &RollingWindow{
		buf: make([]float64, capacity),
	}
}

// Push appends a sample, overwriting the oldest if full.
func (w *RollingWindow) Push(v float64) {
	w.buf[w.head] = v
	w.head = (w.head + 1) % len(w.buf)
	if w.size < len(w.buf) {
		w.size++
	}
}

// Len returns the number of valid samples in the window.
func (w *RollingWindow) Len() int {
	return w.size
}

// Cap returns the window capacity.
func (w *RollingWindow) Cap() int {
	return len(w.buf)
}

// Clear resets the window to empty.
func (w *RollingWindow) Clear() {
	w.head = 0
	w.size = 0
}

// Mean returns the trailing mean of the samples currently in the window, or
// 0 when the window is empty.
func (w *RollingWindow) Mean() float64 {
	if w.size == 0 {
		return 0
	}
	var sum float64
	for _, v := range w.Values() {
		sum += v
	}
	return sum / float64(w.size)
}

// Values returns the samples in chronological order, oldest first.
func (w *RollingWindow) Values() []float64 {
	out := make([]float64, w.size)
	// oldest entry sits at (head - size + cap) % cap
	start := (w.head - w.size + len(w.buf)) % len(w.buf)
	for i := 0; i < w.size; i++ {
		out[i] = w.buf[(start+i)%len(w.buf)]
	}
	return out
}

// Last returns the most recently pushed sample, or 0 when empty.
func (w *RollingWindow) Last() float64 {
	if w.size == 0 {
		return 0
	}
	return w.buf[(w.head-1+len(w.buf))%len(w.buf)]
}
