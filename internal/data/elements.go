package data

import "github.com/udisondev/beastclash/internal/model"

// Chart maps attacking element → defending element → multiplier.
// Missing pairs are neutral (1.0).
type Chart map[model.Element]map[model.Element]float64

// Effectiveness multiplies the chart entries of attack against every
// element of the defender.
func (c Chart) Effectiveness(attack model.Element, defender []model.Element) float64 {
	m := 1.0
	row := c[attack]
	if row == nil {
		return m
	}
	for _, d := range defender {
		if v, ok := row[d]; ok {
			m *= v
		}
	}
	return m
}

func defaultChart() Chart {
	return Chart{
		"normal":   {"ghost": 0},
		"fire":     {"grass": 2, "ice": 2, "water": 0.5, "fire": 0.5, "dragon": 0.5},
		"water":    {"fire": 2, "ground": 2, "water": 0.5, "grass": 0.5, "dragon": 0.5},
		"grass":    {"water": 2, "ground": 2, "fire": 0.5, "grass": 0.5, "poison": 0.5, "dragon": 0.5},
		"electric": {"water": 2, "electric": 0.5, "grass": 0.5, "ground": 0, "dragon": 0.5},
		"ice":      {"grass": 2, "ground": 2, "dragon": 2, "fire": 0.5, "water": 0.5, "ice": 0.5},
		"poison":   {"grass": 2, "fairy": 2, "poison": 0.5, "ground": 0.5, "ghost": 0.5},
		"ground":   {"fire": 2, "electric": 2, "poison": 2, "grass": 0.5},
		"psychic":  {"poison": 2, "psychic": 0.5, "dark": 0},
		"ghost":    {"ghost": 2, "psychic": 2, "dark": 0.5, "normal": 0},
		"dragon":   {"dragon": 2, "fairy": 0},
		"dark":     {"ghost": 2, "psychic": 2, "dark": 0.5, "fairy": 0.5},
		"fairy":    {"dragon": 2, "dark": 2, "fire": 0.5, "poison": 0.5},
	}
}
