// Package export writes rendered tracks as source code or data files, using
// text templates.
package export

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/vsariola/sequence"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	Exporter struct {
		Template *template.Template
	}

	// TrackData is what the templates see.
	TrackData struct {
		Name   string
		Track  *sequence.Track
		Rate   float64
		Buffer sequence.Buffer
	}
)

//go:embed templates/*
var defaultTemplates embed.FS

// New returns an exporter using the built-in templates: track.h for a C
// header and track.csv for comma separated values.
func New() (*Exporter, error) {
	tmpl, err := template.New("base").Funcs(funcMap()).ParseFS(defaultTemplates, "templates/*")
	if err != nil {
		return nil, fmt.Errorf("could not parse the built-in templates: %w", err)
	}
	return &Exporter{Template: tmpl}, nil
}

func NewFromTemplates(templateDirectory string) (*Exporter, error) {
	globPtrn := filepath.Join(templateDirectory, "*.*")
	tmpl, err := template.New("base").Funcs(funcMap()).ParseGlob(globPtrn)
	if err != nil {
		return nil, fmt.Errorf(`could not create template based on directory "%v": %v`, templateDirectory, err)
	}
	return &Exporter{Template: tmpl}, nil
}

func funcMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	caser := cases.Title(language.English, cases.NoLower)
	funcs["title"] = func(s string) string { return caser.String(s) }
	funcs["cfloat"] = cFloat
	return funcs
}

// cFloat formats v as a C float literal, e.g. 8 as 8.0f and 0.25 as 0.25f.
func cFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'g', -1, 32)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s + "f"
}

// Track renders the track at rate rows per second and executes the given
// templates on it. The result maps the extension of each template name to
// the executed template.
func (e *Exporter) Track(name string, t *sequence.Track, rate float64, templateNames ...string) (map[string]string, error) {
	buf, err := sequence.Render(t, rate)
	if err != nil {
		return nil, fmt.Errorf("could not render track %q: %w", t.ID, err)
	}
	data := TrackData{Name: name, Track: t, Rate: rate, Buffer: buf}
	ret := map[string]string{}
	for _, templateName := range templateNames {
		result := bytes.NewBufferString("")
		if err := e.Template.ExecuteTemplate(result, templateName, data); err != nil {
			return nil, fmt.Errorf(`could not execute template "%v": %w`, templateName, err)
		}
		ret[filepath.Ext(templateName)] = result.String()
	}
	return ret, nil
}
