package synth

// Rack owns the set of configured voices and hands out stable ids for them.
// Voices are added at configuration time and never removed, so an id stays
// valid for the life of the rack. The rack itself is read-only during
// synthesis and safe to share across goroutines.
type Rack struct {
	voices []*Voice
}

func NewRack() *Rack {
	return &Rack{}
}

// Add registers a voice and returns its id.
func (r *Rack) Add(v *Voice) InstrumentID {
	r.voices = append(r.voices, v)
	return InstrumentID(len(r.voices) - 1)
}

// Voice returns the voice for id, or nil if the rack does not know it.
func (r *Rack) Voice(id InstrumentID) *Voice {
	if id < 0 || int(id) >= len(r.voices) {
		return nil
	}
	return r.voices[id]
}

// Len reports the number of registered voices.
func (r *Rack) Len() int {
	return len(r.voices)
}
