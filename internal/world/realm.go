// Package world holds the static realm: kingdoms, their settlements, and
// lookups of settlement class and parent kingdom. The realm is generated once
// per game and never mutated afterwards.
package world

import (
	"fmt"
)

// Kind is the settlement class of a location.
type Kind uint8

const (
	KindCapital Kind = iota
	KindCity
	KindVillage
)

func (k Kind) String() string {
	switch k {
	case KindCapital:
		return "Capital City"
	case KindCity:
		return "City"
	case KindVillage:
		return "Village"
	default:
		return "Unknown"
	}
}

// MarshalText writes the kind as its display name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts a display name.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Capital City", "Capital", "capital":
		*k = KindCapital
	case "City", "city":
		*k = KindCity
	case "Village", "village":
		*k = KindVillage
	default:
		return fmt.Errorf("unknown location kind %q", string(b))
	}
	return nil
}

// Kingdom is a realm with a ruler, a capital, and named settlements.
// The capital also appears in Cities.
type Kingdom struct {
	Name       string   `json:"name"`
	Ruler      string   `json:"ruler"`
	Capital    string   `json:"capital"`
	Cities     []string `json:"cities"`
	Villages   []string `json:"villages"`
	Prosperity int      `json:"prosperity"`
	Stability  int      `json:"stability"`
}

// Location is a single settlement. Population and prosperity are fixed at
// generation.
type Location struct {
	Name       string   `json:"name"`
	Kind       Kind     `json:"kind"`
	Kingdom    string   `json:"kingdom"`
	Position   HexCoord `json:"position"`
	Population int      `json:"population"`
	Prosperity int      `json:"prosperity"`
}

// World is the generated realm.
type World struct {
	Seed      int64      `json:"seed"`
	Kingdoms  []Kingdom  `json:"kingdoms"`
	Locations []Location `json:"locations"`
}

// Location looks up a settlement by name.
func (w *World) Location(name string) (Location, bool) {
	for _, l := range w.Locations {
		if l.Name == name {
			return l, true
		}
	}
	return Location{}, false
}

// KindOf returns the settlement class of a location.
func (w *World) KindOf(name string) (Kind, bool) {
	l, ok := w.Location(name)
	return l.Kind, ok
}

// KingdomOf returns the name of the kingdom a location belongs to.
func (w *World) KingdomOf(name string) (string, bool) {
	for _, k := range w.Kingdoms {
		if k.Capital == name || contains(k.Cities, name) || contains(k.Villages, name) {
			return k.Name, true
		}
	}
	return "", false
}

// Describe returns flavor text for a location based on its class.
func (w *World) Describe(name string) string {
	kingdom, _ := w.KingdomOf(name)
	kind, ok := w.KindOf(name)
	if !ok {
		return fmt.Sprintf("%s is a settlement in %s.", name, kingdom)
	}
	switch kind {
	case KindCapital:
		return fmt.Sprintf("%s is the grand capital of %s. The streets are bustling with nobles, merchants, and commoners alike. The royal castle dominates the skyline.", name, kingdom)
	case KindCity:
		return fmt.Sprintf("%s is a major city in %s. Stone buildings line the cobbled streets, and city guards patrol regularly.", name, kingdom)
	default:
		return fmt.Sprintf("%s is a small village in the countryside of %s. Thatched cottages surround a village square with a well.", name, kingdom)
	}
}

func contains(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}
