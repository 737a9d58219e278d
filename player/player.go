// Package player plays a sequence: a clock advances the player time, and on
// every tick each bound track is sampled and its value delivered to the
// parameter of its output, either directly on the player goroutine or later
// through Output.Update on the goroutine that owns the parameter.
package player

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/vsariola/sequence"
)

type (
	// Player owns a sequence and the adapters binding its tracks to outputs.
	// Ticks and edits are serialized by the same mutex, so the sequence can be
	// edited while playing, as long as it is done through Edit.
	Player struct {
		mu       sync.Mutex
		seq      sequence.Sequence
		outputs  []*Output
		adapters []Adapter
		playing  bool
		paused   bool
		looping  bool
		speed    float64
		time     float64

		registry *Registry
		clock    Clock
		broker   *Broker
		logger   *log.Logger

		alertMu sync.Mutex
		alerted map[binding]bool
	}

	binding struct {
		track, output string
	}

	Option func(*Player)
)

func WithClock(c Clock) Option {
	return func(p *Player) { p.clock = c }
}

func WithRegistry(r *Registry) Option {
	return func(p *Player) { p.registry = r }
}

func WithBroker(b *Broker) Option {
	return func(p *Player) { p.broker = b }
}

func WithLogger(l *log.Logger) Option {
	return func(p *Player) { p.logger = l }
}

func WithLooping(enabled bool) Option {
	return func(p *Player) { p.looping = enabled }
}

func WithSpeed(speed float64) Option {
	return func(p *Player) { p.speed = speed }
}

// NewPlayer returns a stopped player driving the given outputs. Without
// options, it uses a StandardClock at DefaultFrequency, the default registry,
// a new broker and the standard logger.
func NewPlayer(outputs []*Output, opts ...Option) *Player {
	p := &Player{outputs: outputs, speed: 1}
	for _, opt := range opts {
		opt(p)
	}
	if p.clock == nil {
		p.clock = NewStandardClock(DefaultFrequency)
	}
	if p.registry == nil {
		p.registry = NewDefaultRegistry()
	}
	if p.broker == nil {
		p.broker = NewBroker()
	}
	if p.logger == nil {
		p.logger = log.Default()
	}
	return p
}

func (p *Player) Broker() *Broker { return p.broker }

// Start starts the clock. The player only advances its time once playing.
func (p *Player) Start() error {
	if err := p.clock.Start(p.tick); err != nil {
		return fmt.Errorf("could not start the clock: %w", err)
	}
	return nil
}

// Stop stops playing and the clock.
func (p *Player) Stop() {
	p.SetIsPlaying(false)
	p.clock.Stop()
}

// Load installs a copy of seq. Tracks that do not validate are kept, so they
// can be fixed with Edit, but they are not played; their errors are returned
// joined. When playing, the adapters are recreated.
func (p *Player) Load(seq sequence.Sequence) error {
	p.alertMu.Lock()
	p.alerted = nil
	p.alertMu.Unlock()
	TrySend(p.broker.ToMain, MsgToMain{Data: p.load(seq)})
	var errs []error
	for i := range seq.Tracks {
		if err := seq.Tracks[i].Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		p.alert(Warning, "LoadSequence", fmt.Sprintf("%d tracks will not play: %v", len(errs), err))
		return err
	}
	return nil
}

func (p *Player) load(seq sequence.Sequence) SequenceLoaded {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq = seq.Copy()
	p.seq.UpdateDuration()
	p.time = min(max(p.time, 0), p.seq.Duration)
	if p.playing {
		p.destroyAdapters()
		p.createAdapters()
	}
	return SequenceLoaded{Duration: p.seq.Duration, Tracks: len(p.seq.Tracks)}
}

// Edit calls f with the sequence of the player, holding the same lock as the
// ticks. The sequence pointer must not be retained after f returns. When
// playing, the adapters are recreated after the edit, as tracks may have
// moved, changed kind or been rebound.
func (p *Player) Edit(f func(seq *sequence.Sequence) error) error {
	err := p.edit(f)
	TrySend(p.broker.ToMain, MsgToMain{Data: SequenceEdited{}})
	return err
}

func (p *Player) edit(f func(seq *sequence.Sequence) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := f(&p.seq)
	p.seq.UpdateDuration()
	if p.playing {
		p.destroyAdapters()
		p.createAdapters()
	}
	return err
}

// Sequence returns a copy of the sequence of the player.
func (p *Player) Sequence() sequence.Sequence {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seq.Copy()
}

// Output returns the output with the given id, or nil.
func (p *Player) Output(id string) *Output {
	for _, o := range p.outputs {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func (p *Player) Outputs() []*Output { return p.outputs }

// Update applies the values stored by deferred adapters. Call it regularly
// from the goroutine that owns the parameters of the UseMainThread outputs.
func (p *Player) Update(deltaTime float64) {
	for _, o := range p.outputs {
		o.Update(deltaTime)
	}
}

// SetIsPlaying starts or stops playing. Starting creates an adapter for every
// valid track bound to an output; stopping destroys them. Both unpause.
func (p *Player) SetIsPlaying(playing bool) {
	if p.setIsPlaying(playing) {
		TrySend(p.broker.ToMain, MsgToMain{Data: PlayState{Playing: playing}})
	}
}

func (p *Player) setIsPlaying(playing bool) (changed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing == playing {
		return false
	}
	if playing {
		p.createAdapters()
	} else {
		p.destroyAdapters()
	}
	p.playing = playing
	p.paused = false
	return true
}

func (p *Player) SetIsPaused(paused bool) {
	p.mu.Lock()
	changed := p.paused != paused
	p.paused = paused
	p.mu.Unlock()
	if changed {
		TrySend(p.broker.ToMain, MsgToMain{Data: PauseState{Paused: paused}})
	}
}

func (p *Player) SetIsLooping(looping bool) {
	p.mu.Lock()
	p.looping = looping
	p.mu.Unlock()
}

// SetPlaybackSpeed sets how many seconds of the sequence are played per second
// of the clock. Negative speeds play backwards.
func (p *Player) SetPlaybackSpeed(speed float64) {
	p.mu.Lock()
	p.speed = speed
	p.mu.Unlock()
}

// SetPlayerTime moves the playhead, clamped to the duration of the sequence.
func (p *Player) SetPlayerTime(time float64) {
	p.mu.Lock()
	p.time = min(max(time, 0), p.seq.Duration)
	p.mu.Unlock()
}

func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *Player) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

func (p *Player) IsLooping() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.looping
}

func (p *Player) PlaybackSpeed() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}

func (p *Player) PlayerTime() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.time
}

func (p *Player) Duration() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seq.Duration
}

// tick is called by the clock on the player goroutine.
func (p *Player) tick(deltaTime float64) {
	if time, ok := p.advance(deltaTime); ok {
		TrySend(p.broker.ToMain, MsgToMain{HasPosition: true, Position: time})
	}
}

// advance moves the playhead and ticks the adapters. ok is false when not
// playing.
func (p *Player) advance(deltaTime float64) (time float64, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing {
		return 0, false
	}
	if !p.paused {
		p.time += deltaTime * p.speed
	}
	d := p.seq.Duration
	switch {
	case d <= 0:
		p.time = 0
	case p.looping:
		if p.time < 0 {
			p.time = d + math.Mod(p.time, d)
		}
		if p.time > d {
			p.time = math.Mod(p.time, d)
		}
	default:
		p.time = min(max(p.time, 0), d)
	}
	for _, a := range p.adapters {
		a.Tick(p.time)
	}
	return p.time, true
}

// createAdapters must be called with the lock held. Tracks without an output
// id or with an unknown output are silently skipped.
func (p *Player) createAdapters() {
	for i := range p.seq.Tracks {
		t := &p.seq.Tracks[i]
		if t.Output == "" {
			continue
		}
		o := p.Output(t.Output)
		if o == nil {
			continue
		}
		if err := t.Validate(); err != nil {
			p.logger.Printf("track %q is not played: %v", t.ID, err)
			continue
		}
		a := p.registry.Create(t, o, p)
		if a == nil {
			p.logger.Printf("unable to create an adapter for track %q and output %q", t.ID, o.ID)
			p.alertOnce(t, o, Warning, fmt.Sprintf("Track %q cannot drive output %q", t.ID, o.ID))
			continue
		}
		p.adapters = append(p.adapters, a)
	}
}

// destroyAdapters must be called with the lock held.
func (p *Player) destroyAdapters() {
	for _, a := range p.adapters {
		a.Destroy()
	}
	p.adapters = p.adapters[:0]
}

// alertOnce sends a CreateAdapter alert, unless one was already sent for the
// same track and output since the last Load.
func (p *Player) alertOnce(t *sequence.Track, o *Output, priority AlertPriority, message string) {
	p.alertMu.Lock()
	b := binding{track: t.ID, output: o.ID}
	sent := p.alerted[b]
	if p.alerted == nil {
		p.alerted = map[binding]bool{}
	}
	p.alerted[b] = true
	p.alertMu.Unlock()
	if !sent {
		p.alert(priority, "CreateAdapter", message)
	}
}

func (p *Player) alert(priority AlertPriority, name, message string) {
	TrySend(p.broker.ToMain, MsgToMain{Data: Alert{Name: name, Priority: priority, Message: message, Duration: defaultAlertDuration}})
}
