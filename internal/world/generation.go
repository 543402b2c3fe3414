// Realm generation. The kingdom graph is fixed; each settlement's population
// and prosperity are read from layered simplex noise at its map position.
package world

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/medieval-life/internal/entropy"
)

// Population and prosperity ranges by settlement class.
const (
	CityPopMin        = 2000
	CityPopMax        = 8000
	CityProsperMin    = 50
	CityProsperMax    = 90
	VillagePopMin     = 100
	VillagePopMax     = 1000
	VillageProsperMin = 30
	VillageProsperMax = 70
)

// DefaultKingdoms returns the two kingdoms every game starts with.
func DefaultKingdoms() []Kingdom {
	return []Kingdom{
		{
			Name:       "Westoria",
			Ruler:      "King Edmund",
			Capital:    "Crownhaven",
			Cities:     []string{"Crownhaven", "Eastport", "Northkeep"},
			Villages:   []string{"Millvale", "Riverside", "Oakhill", "Pinedale"},
			Prosperity: 70,
			Stability:  65,
		},
		{
			Name:       "Eastmark",
			Ruler:      "Queen Elara",
			Capital:    "Easthold",
			Cities:     []string{"Easthold", "Southbay"},
			Villages:   []string{"Greenmeadow", "Stonecrest"},
			Prosperity: 60,
			Stability:  80,
		},
	}
}

// Generate builds the realm for a seed. A zero seed draws one from crypto/rand.
func Generate(seed int64) *World {
	if seed == 0 {
		seed = entropy.NewSeed()
	}

	popNoise := opensimplex.NewNormalized(seed)
	prosperNoise := opensimplex.NewNormalized(seed + 1)

	w := &World{Seed: seed, Kingdoms: DefaultKingdoms()}

	for ki, k := range w.Kingdoms {
		// Kingdoms sit side by side; settlements fan out in rows.
		origin := HexCoord{Q: ki * 12, R: 0}
		slot := 0
		place := func(name string, kind Kind) {
			pos := HexCoord{Q: origin.Q + (slot%3)*3, R: origin.R + (slot/3)*3}
			slot++

			x, y := pos.Cartesian()
			pn := octaveNoise(popNoise, x, y, 3, 0.15, 0.5)
			rn := octaveNoise(prosperNoise, x, y, 3, 0.15, 0.5)

			loc := Location{Name: name, Kind: kind, Kingdom: k.Name, Position: pos}
			if kind == KindVillage {
				loc.Population = scaleNoise(pn, VillagePopMin, VillagePopMax)
				loc.Prosperity = scaleNoise(rn, VillageProsperMin, VillageProsperMax)
			} else {
				loc.Population = scaleNoise(pn, CityPopMin, CityPopMax)
				loc.Prosperity = scaleNoise(rn, CityProsperMin, CityProsperMax)
			}
			w.Locations = append(w.Locations, loc)
		}

		for _, c := range k.Cities {
			if c == k.Capital {
				place(c, KindCapital)
			} else {
				place(c, KindCity)
			}
		}
		for _, v := range k.Villages {
			place(v, KindVillage)
		}
	}

	return w
}

// octaveNoise samples multi-octave simplex noise, normalized to [0, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

func scaleNoise(n float64, lo, hi int) int {
	if n < 0 {
		n = 0
	}
	if n > 1 {
		n = 1
	}
	return lo + int(n*float64(hi-lo))
}
