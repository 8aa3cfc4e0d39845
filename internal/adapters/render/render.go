// Package render formats scoring reports and rankings for output.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/meetscore/internal/domain/types"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Renderer writes reports and rankings to w.
type Renderer interface {
	Report(w io.Writer, r *types.Report) error
	Rankings(w io.Writer, rankings []types.EventRanking) error
}

// New returns the renderer for f.
func New(f Format) (Renderer, error) {
	switch f {
	case FormatText:
		return textRenderer{}, nil
	case FormatYAML:
		return yamlRenderer{}, nil
	case FormatJSON:
		return jsonRenderer{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

type textRenderer struct{}

// Report prints one "Swimmer: <name>, Time: <time>, Score: <score>" line per result.
func (textRenderer) Report(w io.Writer, r *types.Report) error {
	for _, ev := range r.Events {
		for _, res := range ev.Results {
			if _, err := fmt.Fprintf(w, "Swimmer: %s, Time: %s, Score: %s\n",
				res.Swimmer, formatFloat(res.Time), formatFloat(res.Score)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (textRenderer) Rankings(w io.Writer, rankings []types.EventRanking) error {
	for i, er := range rankings {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, er.Event); err != nil {
			return err
		}
		for _, p := range er.Placings {
			place, final := "-", "NT"
			if p.Place > 0 {
				place = strconv.Itoa(p.Place)
				final = formatFloat(p.FinalTime)
			}
			if _, err := fmt.Fprintf(w, "%4s  %-30s %3d  %s\n", place, p.Swimmer, p.Age, final); err != nil {
				return err
			}
		}
	}
	return nil
}

type yamlRenderer struct{}

func (yamlRenderer) Report(w io.Writer, r *types.Report) error {
	return encodeYAML(w, withErrors(r))
}

func (yamlRenderer) Rankings(w io.Writer, rankings []types.EventRanking) error {
	return encodeYAML(w, rankings)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding to YAML failed: %w", err)
	}
	return enc.Close()
}

type jsonRenderer struct{}

func (jsonRenderer) Report(w io.Writer, r *types.Report) error {
	return encodeJSON(w, withErrors(r))
}

func (jsonRenderer) Rankings(w io.Writer, rankings []types.EventRanking) error {
	return encodeJSON(w, rankings)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// withErrors copies r, filling the serializable Error field from Err.
func withErrors(r *types.Report) *types.Report {
	out := *r
	out.Events = make([]types.EventReport, len(r.Events))
	for i, ev := range r.Events {
		if ev.Err != nil {
			ev.Error = ev.Err.Error()
		}
		if ev.Results == nil {
			ev.Results = []types.Scored{}
		}
		out.Events[i] = ev
	}
	return &out
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
