// Package types contains result shapes shared by the scoring service and renderers.
package types

// Scored is one swimmer's scored final time.
type Scored struct {
	Swimmer string  `json:"swimmer" yaml:"swimmer"`
	Time    float64 `json:"time" yaml:"time"`
	Score   float64 `json:"score" yaml:"score"`
}

// EventReport holds the scores produced for one event. Err is set when the
// event could not be scored; Results are then empty.
type EventReport struct {
	Event   string   `json:"event" yaml:"event"`
	Gender  string   `json:"gender" yaml:"gender"`
	Results []Scored `json:"results" yaml:"results"`
	Skipped int      `json:"skipped" yaml:"skipped"`
	Err     error    `json:"-" yaml:"-"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report is the outcome of one scoring run.
type Report struct {
	RunID  string        `json:"run_id" yaml:"run_id"`
	Meet   string        `json:"meet,omitempty" yaml:"meet,omitempty"`
	Events []EventReport `json:"events" yaml:"events"`
}

// Failed returns the reports of events that could not be scored.
func (r *Report) Failed() []EventReport {
	var out []EventReport
	for _, e := range r.Events {
		if e.Err != nil {
			out = append(out, e)
		}
	}
	return out
}

// Placing is one row of an event ranking.
type Placing struct {
	Place       int     `json:"place,omitempty" yaml:"place,omitempty"`
	Swimmer     string  `json:"swimmer" yaml:"swimmer"`
	Age         int     `json:"age" yaml:"age"`
	PrelimTime  float64 `json:"prelim_time,omitempty" yaml:"prelim_time,omitempty"`
	SwimoffTime float64 `json:"swimoff_time,omitempty" yaml:"swimoff_time,omitempty"`
	FinalTime   float64 `json:"final_time,omitempty" yaml:"final_time,omitempty"`
}

// EventRanking is the ordered result list of one event.
type EventRanking struct {
	Event    string    `json:"event" yaml:"event"`
	Placings []Placing `json:"placings" yaml:"placings"`
}
