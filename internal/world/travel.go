package world

import (
	"sort"

	"github.com/talgya/medieval-life/internal/entropy"
)

// Destination is a reachable settlement and the days the journey takes.
type Destination struct {
	Name    string `json:"name"`
	Kind    Kind   `json:"kind"`
	Kingdom string `json:"kingdom"`
	Days    int    `json:"days"`
}

// Destinations lists every other city and village of the current kingdom plus
// the capital of every other kingdom, with sampled travel times. Nearer
// settlements come first.
func (w *World) Destinations(src entropy.Source, current string) []Destination {
	home, _ := w.KingdomOf(current)
	from, _ := w.Location(current)

	var out []Destination
	for _, k := range w.Kingdoms {
		if k.Name == home {
			for _, c := range k.Cities {
				if c == current {
					continue
				}
				kind, _ := w.KindOf(c)
				out = append(out, Destination{Name: c, Kind: kind, Kingdom: k.Name, Days: entropy.IntRange(src, 1, 3)})
			}
			for _, v := range k.Villages {
				if v == current {
					continue
				}
				out = append(out, Destination{Name: v, Kind: KindVillage, Kingdom: k.Name, Days: entropy.IntRange(src, 1, 2)})
			}
			continue
		}
		out = append(out, Destination{Name: k.Capital, Kind: KindCapital, Kingdom: k.Name, Days: entropy.IntRange(src, 3, 7)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, _ := w.Location(out[i].Name)
		b, _ := w.Location(out[j].Name)
		return Distance(from.Position, a.Position) < Distance(from.Position, b.Position)
	})
	return out
}

// RandomCapital picks the capital of a random kingdom.
func (w *World) RandomCapital(src entropy.Source) string {
	return entropy.Pick(src, w.Kingdoms).Capital
}

// RandomCity picks a random city of a random kingdom.
func (w *World) RandomCity(src entropy.Source) string {
	k := entropy.Pick(src, w.Kingdoms)
	return entropy.Pick(src, k.Cities)
}

// RandomVillage picks a random village of a random kingdom, falling back to
// one of its cities when it has no villages.
func (w *World) RandomVillage(src entropy.Source) string {
	k := entropy.Pick(src, w.Kingdoms)
	if len(k.Villages) == 0 {
		return entropy.Pick(src, k.Cities)
	}
	return entropy.Pick(src, k.Villages)
}
