// Package ranking groups meet entries by event and orders them by final time.
package ranking

import (
	"cmp"
	"slices"

	"github.com/okian/meetscore/internal/domain/model"
	"github.com/okian/meetscore/internal/domain/types"
)

// Results maps an event display name to its ranked entries.
type Results map[string][]model.ResultEntry

// Aggregate flattens every event's entries into ResultEntry rows keyed by the
// event display name and ranks each list. Only the first swimmer of an entry is
// used, so relay teams are listed under their lead-off swimmer. Entries without
// swimmers are dropped. The input is not modified.
func Aggregate(events []model.Event) Results {
	results := make(Results, len(events))
	for _, event := range events {
		name := event.Name()
		for _, entry := range event.Entries {
			if len(entry.Swimmers) == 0 {
				continue
			}
			swimmer := entry.Swimmers[0]
			results[name] = append(results[name], model.ResultEntry{
				Swimmer:     swimmer.FullName(),
				Age:         swimmer.Age,
				PrelimTime:  entry.PrelimTime,
				SwimoffTime: entry.SwimoffTime,
				FinalTime:   entry.FinalsTime,
			})
		}
		if _, ok := results[name]; !ok {
			results[name] = []model.ResultEntry{}
		}
	}
	for name, entries := range results {
		results[name] = Rank(entries)
	}
	return results
}

// Rank returns a copy of entries sorted ascending by final time. Entries with no
// final time sort after every timed entry; the sort is stable.
func Rank(entries []model.ResultEntry) []model.ResultEntry {
	ranked := slices.Clone(entries)
	slices.SortStableFunc(ranked, compareFinal)
	return ranked
}

func compareFinal(a, b model.ResultEntry) int {
	aValid, bValid := a.FinalTime.Valid(), b.FinalTime.Valid()
	switch {
	case aValid && bValid:
		return cmp.Compare(a.FinalTime, b.FinalTime)
	case aValid:
		return -1
	case bValid:
		return 1
	default:
		return 0
	}
}

// Names returns the distinct event display names in order of first appearance.
func Names(events []model.Event) []string {
	seen := make(map[string]struct{}, len(events))
	names := make([]string, 0, len(events))
	for _, e := range events {
		name := e.Name()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Placings numbers a ranked list. Equal times share a place and the next place
// skips accordingly; untimed entries get no place.
func Placings(ranked []model.ResultEntry) []types.Placing {
	out := make([]types.Placing, len(ranked))
	place := 0
	for i, r := range ranked {
		p := types.Placing{
			Swimmer:     r.Swimmer,
			Age:         r.Age,
			PrelimTime:  r.PrelimTime.Seconds(),
			SwimoffTime: r.SwimoffTime.Seconds(),
			FinalTime:   r.FinalTime.Seconds(),
		}
		if r.FinalTime.Valid() {
			if i == 0 || ranked[i-1].FinalTime != r.FinalTime {
				place = i + 1
			}
			p.Place = place
		}
		out[i] = p
	}
	return out
}
