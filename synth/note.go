package synth

// InstrumentID is a stable index into a Rack. Notes reference their voice by
// id rather than by pointer, so a note can never dangle: an id the rack does
// not know is simply dropped by the mixer.
type InstrumentID int

// NoInstrument marks a note that is not bound to any voice.
const NoInstrument InstrumentID = -1

// Note is one sounding event. On and Off are in the caller's global time
// base; On > Off means the note is currently held, Off >= On means it has
// been released. The mixer clears Active once the voice reports completion
// and removes the note on the same pass.
type Note struct {
	ID         int
	On         float64
	Off        float64
	Active     bool
	Instrument InstrumentID
}
