package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-synth/internal/render"
	"github.com/cwbudde/algo-synth/preset"
	"github.com/cwbudde/algo-synth/synth"
)

func main() {
	presetPath := flag.String("preset", "", "Song preset JSON path (empty = built-in demo song)")
	sampleRate := flag.Int("sample-rate", 44100, "Playback sample rate in Hz")
	masterGain := flag.Float64("master-gain", 0.5, "Gain applied before the soft clip")
	flag.Parse()

	var song *preset.Song
	var err error
	if *presetPath == "" {
		song = preset.Default()
	} else {
		song, err = preset.Load(*presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading preset %q: %v\n", *presetPath, err)
			os.Exit(1)
		}
	}

	stream := render.NewStream(song, render.Options{
		SampleRate: *sampleRate,
		MasterGain: *masterGain,
	})

	op := &oto.NewContextOptions{
		SampleRate:   *sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}
	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening audio device: %v\n", err)
		os.Exit(1)
	}
	<-ready

	player := otoCtx.NewPlayer(stream)
	player.SetBufferSize(*sampleRate / 10) // 100ms
	player.Play()
	defer player.Close()

	m := newModel(song, stream)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type model struct {
	song   *preset.Song
	stream *render.Stream
	step   int
	active int
	width  int
}

func newModel(song *preset.Song, stream *render.Stream) model {
	return model{song: song, stream: stream, width: 80}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, tickCmd())
}

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		m.step = m.stream.Step()
		m.active = m.stream.ActiveNotes()
		return m, tickCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.stream.Stop()
			return m, tea.Quit
		case " ":
			if m.stream.Playing() {
				m.stream.Stop()
			} else {
				m.stream.Play()
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("14")).
		Render("ALGO-SYNTH TRACKER")
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("STOPPED")
	if m.stream.Playing() {
		status = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("PLAYING")
	}
	fmt.Fprintf(&b, "%s  %s  %.0f BPM  %d voices\n\n",
		title, status, m.song.Seq.Tempo(), m.song.Rack.Len())

	b.WriteString(m.gridView())

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("8")).
		Render("space: play/stop  q: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m model) gridView() string {
	var b strings.Builder

	total := m.song.Seq.TotalSteps()
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	headStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	beatStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	playStyle := lipgloss.NewStyle().Background(lipgloss.Color("10")).Foreground(lipgloss.Color("0"))
	hitStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	restStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	b.WriteString(strings.Repeat(" ", 14))
	for s := 0; s < total; s++ {
		label := fmt.Sprintf("%2d", s%100)
		style := headStyle
		if s%m.song.Seq.SubBeats() == 0 {
			style = beatStyle
		}
		b.WriteString(style.Render(label))
		b.WriteString(" ")
	}
	b.WriteString("\n")

	for _, ch := range m.song.Seq.Channels() {
		name := "?"
		if v := m.song.Rack.Voice(ch.Instrument); v != nil {
			name = v.Name
		}
		fmt.Fprintf(&b, "%s", nameStyle.Render(fmt.Sprintf("%-13s ", trunc(name, 13))))

		for s := 0; s < total; s++ {
			cell := " ."
			style := restStyle
			if s < len(ch.Pattern) && ch.Pattern[s] == synth.TriggerMark {
				cell = " x"
				style = hitStyle
			}
			if s == m.step && m.stream.Playing() {
				style = playStyle
			}
			b.WriteString(style.Render(cell))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n%s\n", headStyle.Render(
		fmt.Sprintf("step %d/%d  %d active notes", m.step, total, m.active)))
	return b.String()
}

func trunc(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
