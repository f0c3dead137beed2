package synth

// TriggerMark is the pattern character that fires a note; any other
// character is a rest.
const TriggerMark = 'x'

// triggerPitch is the fixed pitch id assigned to sequencer-fired notes.
const triggerPitch = 64

// Channel binds one instrument to a trigger pattern, one character per grid
// step. Patterns shorter than the grid simply never trigger on the missing
// steps.
type Channel struct {
	Instrument InstrumentID
	Pattern    string
}

// Sequencer advances a fixed-length circular beat grid from elapsed time and
// reports which notes fired. It does not insert notes anywhere; the caller
// hands them to a Mixer.
type Sequencer struct {
	tempo        float64
	beats        int
	subBeats     int
	totalSteps   int
	step         int
	stepDuration float64
	accumulated  float64

	channels  []Channel
	triggered []Note
}

// NewSequencer creates a sequencer with tempo in beats per minute, beats per
// loop and sub-beats per beat. The grid has beats*subBeats steps and each
// step lasts 60/tempo/subBeats seconds.
func NewSequencer(tempo float64, beats, subBeats int) *Sequencer {
	return &Sequencer{
		tempo:        tempo,
		beats:        beats,
		subBeats:     subBeats,
		totalSteps:   beats * subBeats,
		stepDuration: 60.0 / tempo / float64(subBeats),
	}
}

// AddChannel registers an instrument with its trigger pattern.
func (s *Sequencer) AddChannel(id InstrumentID, pattern string) {
	s.channels = append(s.channels, Channel{Instrument: id, Pattern: pattern})
}

// Update advances the grid by delta seconds and returns the notes triggered
// on the steps crossed. A delta spanning several steps fires every
// intervening step; none are skipped. The returned slice is reused by the
// next Update call.
func (s *Sequencer) Update(delta float64) []Note {
	s.triggered = s.triggered[:0]

	s.accumulated += delta
	for s.accumulated >= s.stepDuration {
		s.accumulated -= s.stepDuration

		s.step++
		if s.step >= s.totalSteps {
			s.step = 0
		}

		for _, ch := range s.channels {
			if s.step < len(ch.Pattern) && ch.Pattern[s.step] == TriggerMark {
				s.triggered = append(s.triggered, Note{
					ID:         triggerPitch,
					Active:     true,
					Instrument: ch.Instrument,
				})
			}
		}
	}

	return s.triggered
}

// Step returns the current grid position.
func (s *Sequencer) Step() int {
	return s.step
}

// TotalSteps returns the grid length.
func (s *Sequencer) TotalSteps() int {
	return s.totalSteps
}

// StepDuration returns the length of one grid step in seconds.
func (s *Sequencer) StepDuration() float64 {
	return s.stepDuration
}

// SubBeats returns the number of sub-beats per beat.
func (s *Sequencer) SubBeats() int {
	return s.subBeats
}

// Tempo returns the configured tempo in beats per minute.
func (s *Sequencer) Tempo() float64 {
	return s.tempo
}

// Channels returns the registered channels.
func (s *Sequencer) Channels() []Channel {
	return s.channels
}
