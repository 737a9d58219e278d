package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/vsariola/sequence/export"
	"github.com/vsariola/sequence/midiout"
	"github.com/vsariola/sequence/oto"
	"github.com/vsariola/sequence/parameter"
	"github.com/vsariola/sequence/player"
	"github.com/vsariola/sequence/version"
)

func main() {
	help := flag.Bool("h", false, "Show help.")
	versionFlag := flag.Bool("v", false, "Print version.")
	clockType := flag.String("clock", "standard", "Clock driving the player: standard (timer) or audio (the default audio device).")
	frequency := flag.Float64("freq", player.DefaultFrequency, "Tick frequency of the standard clock, in Hz.")
	sampleRate := flag.Int("samplerate", 44100, "Sample rate of the audio clock.")
	loop := flag.Bool("loop", false, "Loop the sequence instead of stopping at the end.")
	speed := flag.Float64("speed", 1, "Playback speed; negative values play backwards.")
	start := flag.Float64("start", 0, "Start playing from this time, in seconds.")
	fps := flag.Float64("fps", 60, "How many times per second the main thread updates the parameters.")
	quiet := flag.Bool("q", false, "Do not print parameter changes.")
	midiPort := flag.String("midi", "", "Send the outputs with a midi configuration to this MIDI output port. Use - for the first port.")
	render := flag.Bool("render", false, "Do not play; render every track through templates instead.")
	rate := flag.Float64("rate", 60, "Rows per second when rendering.")
	templates := flag.String("t", "track.csv", "Comma separated list of templates to render.")
	templateDir := flag.String("templates", "", "Directory of custom templates. By default, the built-in templates are used.")
	directory := flag.String("o", "", "Directory where to output the rendered files. By default, the current working directory.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() != 1 || *help {
		flag.Usage()
		os.Exit(0)
	}
	show, err := player.ReadShow(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *render {
		if err := renderShow(&show, *templateDir, strings.Split(*templates, ","), *rate, *directory); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}
	outputs, err := show.BuildOutputs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if !*quiet {
		for _, o := range outputs {
			printChanges(o.Parameter)
		}
	}
	if *midiPort != "" {
		port := *midiPort
		if port == "-" {
			port = ""
		}
		send, closer, err := openMIDI(port)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not open MIDI output: %v\n", err)
			os.Exit(1)
		}
		defer closer()
		for i, c := range show.Outputs {
			if c.MIDI == nil {
				continue
			}
			midiout.NewCC(c.MIDI.Channel, c.MIDI.Controller, send).Attach(outputs[i].Parameter.(*parameter.Int))
		}
	}
	var clock player.Clock
	switch *clockType {
	case "standard":
		clock = player.NewStandardClock(*frequency)
	case "audio":
		clock = oto.NewClock(*sampleRate)
	default:
		fmt.Fprintf(os.Stderr, "unknown clock %q\n", *clockType)
		os.Exit(1)
	}
	p := player.NewPlayer(outputs,
		player.WithClock(clock),
		player.WithLooping(*loop),
		player.WithSpeed(*speed),
		player.WithLogger(log.New(os.Stderr, "seqplay: ", log.LstdFlags)))
	if err := p.Load(show.Sequence); err != nil {
		fmt.Fprintf(os.Stderr, "some tracks will not play: %v\n", err)
	}
	p.SetPlayerTime(*start)
	if err := p.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer p.Stop()
	p.SetIsPlaying(true)
	run(p, *fps, *loop)
}

// run updates the parameters on the main goroutine until the sequence ends or
// the user interrupts.
func run(p *player.Player, fps float64, loop bool) {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	ticker := time.NewTicker(time.Duration(float64(time.Second) / fps))
	defer ticker.Stop()
	broker := p.Broker()
	last := time.Now()
	duration := p.Duration()
	for {
		select {
		case <-interrupt:
			return
		case now := <-ticker.C:
			p.Update(now.Sub(last).Seconds())
			last = now
		case msg := <-broker.ToMain:
			switch d := msg.Data.(type) {
			case player.Alert:
				fmt.Fprintln(os.Stderr, d)
			case player.SequenceLoaded:
				duration = d.Duration
			}
			if msg.HasPosition && !loop && p.PlaybackSpeed() >= 0 && msg.Position >= duration {
				p.Update(0)
				return
			}
			if msg.HasPosition && !loop && p.PlaybackSpeed() < 0 && msg.Position <= 0 {
				p.Update(0)
				return
			}
		}
	}
}

func printChanges(param parameter.Parameter) {
	switch p := param.(type) {
	case *parameter.Float:
		p.OnChange(func(float32) { fmt.Println(p) })
	case *parameter.Double:
		p.OnChange(func(float64) { fmt.Println(p) })
	case *parameter.Int:
		p.OnChange(func(int) { fmt.Println(p) })
	case *parameter.Vec2:
		p.OnChange(func([2]float32) { fmt.Println(p) })
	case *parameter.Vec3:
		p.OnChange(func([3]float32) { fmt.Println(p) })
	}
}

func renderShow(show *player.Show, templateDir string, templates []string, rate float64, directory string) error {
	var e *export.Exporter
	var err error
	if templateDir != "" {
		e, err = export.NewFromTemplates(templateDir)
	} else {
		e, err = export.New()
	}
	if err != nil {
		return err
	}
	if directory == "" {
		if directory, err = os.Getwd(); err != nil {
			return fmt.Errorf("could not get working directory, specify the output directory explicitly: %v", err)
		}
	}
	if err := os.MkdirAll(directory, os.ModePerm); err != nil {
		return fmt.Errorf("could not create output directory %v: %v", directory, err)
	}
	for i := range show.Sequence.Tracks {
		t := &show.Sequence.Tracks[i]
		name := t.Name
		if name == "" {
			name = t.ID
		}
		files, err := e.Track(name, t, rate, templates...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping track %q: %v\n", t.ID, err)
			continue
		}
		for ext, contents := range files {
			f := filepath.Join(directory, name+ext)
			if err := os.WriteFile(f, []byte(contents), 0644); err != nil {
				return fmt.Errorf("could not write file %v: %v", f, err)
			}
		}
	}
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Sequence player %v\nPlays a show file (.yml or .json) in real time, printing the parameter values.\nUsage: %s [flags] show.yml\n", version.VersionOrHash, os.Args[0])
	flag.PrintDefaults()
}
