package model

import "strings"

// Swimmer is one athlete listed on an entry.
type Swimmer struct {
	FirstName     string
	MiddleInitial string
	LastName      string
	Age           int
}

// FullName joins first name, optional middle initial and last name with single spaces.
func (s Swimmer) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.FirstName, s.MiddleInitial, s.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Entry is one swimmer's (or relay team's) participation in an event.
// Relay entries list their members in swim order.
type Entry struct {
	Swimmers    []Swimmer
	PrelimTime  SwimTime
	SwimoffTime SwimTime
	FinalsTime  SwimTime
}

// ResultEntry is the flattened per-swimmer result used for ranking and scoring.
type ResultEntry struct {
	Swimmer     string
	Age         int
	PrelimTime  SwimTime
	SwimoffTime SwimTime
	FinalTime   SwimTime
}
