// Package sound plays short tones for session events.
package sound

import (
	"sync"
	"time"

	"snake-sim/game"
	"snake-sim/game/types"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

const sampleRate = beep.SampleRate(44100)

type note struct {
	freq float64
	dur  time.Duration
}

var (
	eatNotes   = []note{{880, 40 * time.Millisecond}, {1320, 60 * time.Millisecond}}
	deathNotes = []note{{330, 120 * time.Millisecond}, {220, 120 * time.Millisecond}, {110, 240 * time.Millisecond}}
	startNotes = []note{{440, 80 * time.Millisecond}, {660, 80 * time.Millisecond}}
)

// Player turns session events into tones. Cues are queued on a mixer that is
// only connected to the speaker after Initialize, so an uninitialized Player
// is silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	lastScore   float64
	initialized bool
}

func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return errors.Wrap(err, "init speaker")
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// melody chains sine tones into one streamer
func melody(notes []note) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		sine, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			return nil, errors.Wrapf(err, "tone %v Hz", n.freq)
		}
		parts = append(parts, beep.Take(sampleRate.N(n.dur), sine))
	}
	return beep.Seq(parts...), nil
}

func (p *Player) queue(notes []note) {
	s, err := melody(notes)
	if err != nil {
		return
	}
	p.mu.Lock()
	initialized := p.initialized
	p.mu.Unlock()

	if initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Add(s)
}

// Pending is the number of cues not yet fully played
func (p *Player) Pending() int {
	p.mu.Lock()
	initialized := p.initialized
	p.mu.Unlock()

	if initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

func (p *Player) Mixer() beep.Streamer {
	return p.mixer
}

var _ game.Observer = (*Player)(nil)

func (p *Player) OnFrame(game.Snapshot) {}

func (p *Player) OnScoreChanged(score float64) {
	p.mu.Lock()
	ate := score > p.lastScore
	p.lastScore = score
	p.mu.Unlock()

	if ate {
		p.queue(eatNotes)
	}
}

func (p *Player) OnGameOver(types.DeathCause) {
	p.queue(deathNotes)
}

func (p *Player) OnGameReset() {
	p.mu.Lock()
	p.lastScore = 0
	p.mu.Unlock()
	p.queue(startNotes)
}
