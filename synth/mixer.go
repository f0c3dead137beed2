package synth

import (
	"fmt"
	"sync"
)

// Mixer sums the currently sounding notes into one scalar sample per query.
// One mutex serializes note insertion (control path) against the
// sample-and-prune cycle (audio callback path); the sum and the prune happen
// inside a single critical section so the removed set is always consistent
// with the sum just produced.
type Mixer struct {
	mu    sync.Mutex
	rack  *Rack
	notes []Note
}

func NewMixer(rack *Rack) *Mixer {
	return &Mixer{rack: rack}
}

// Sample returns the summed output of all active notes at timeGlobal.
// Notes whose voice reports completion are removed before returning; a note
// bound to an id the rack does not know is dropped the same way. With no
// active notes the result is exactly 0.
func (m *Mixer) Sample(timeGlobal float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := 0.0
	for i := range m.notes {
		v := m.rack.Voice(m.notes[i].Instrument)
		if v == nil {
			m.notes[i].Active = false
			continue
		}

		sound, done := v.Sound(timeGlobal, m.notes[i])
		out += sound
		if done {
			m.notes[i].Active = false
		}
	}

	kept := m.notes[:0]
	for _, n := range m.notes {
		if n.Active {
			kept = append(kept, n)
		}
	}
	m.notes = kept

	return out
}

// Trigger inserts sequencer-fired notes, stamping each with timeGlobal as
// its on-time so it starts held. Notes bound to unknown instruments are
// skipped.
func (m *Mixer) Trigger(notes []Note, timeGlobal float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, n := range notes {
		if m.rack.Voice(n.Instrument) == nil {
			continue
		}
		n.On = timeGlobal
		n.Off = 0.0
		n.Active = true
		m.notes = append(m.notes, n)
	}
}

// NoteOn starts a held note with the given pitch id on instrument id at
// timeGlobal. It fails if the rack does not know the instrument.
func (m *Mixer) NoteOn(id InstrumentID, pitch int, timeGlobal float64) error {
	if m.rack.Voice(id) == nil {
		return fmt.Errorf("unknown instrument id %d", id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes = append(m.notes, Note{
		ID:         pitch,
		On:         timeGlobal,
		Active:     true,
		Instrument: id,
	})
	return nil
}

// NoteOff releases every held note with the given pitch id by stamping its
// off-time. Silence-terminated voices then decay over their release window.
func (m *Mixer) NoteOff(pitch int, timeGlobal float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.notes {
		if m.notes[i].ID == pitch && m.notes[i].On > m.notes[i].Off {
			m.notes[i].Off = timeGlobal
		}
	}
}

// ActiveNotes reports how many notes are currently sounding.
func (m *Mixer) ActiveNotes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.notes)
}
