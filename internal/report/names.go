package report

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
)

// DisplayName returns the title-cased species name, or "???" when unknown.
func DisplayName(name string) string {
	if name == "" {
		return "???"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
}

// statOrder is the display order of base stats.
var statOrder = []string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"}

var statLabels = map[string]string{
	"hp":              "HP",
	"attack":          "Atk",
	"defense":         "Def",
	"special-attack":  "SpA",
	"special-defense": "SpD",
	"speed":           "Spe",
}

func statLabel(name string) string {
	if l, ok := statLabels[name]; ok {
		return l
	}
	return name
}

// statPair is a display label and value.
type statPair struct {
	Label string
	Value string
}

// orderedStats returns stats in display order; unknown stat names follow in
// lexical order.
func orderedStats(stats map[string]int) []statPair {
	out := make([]statPair, 0, len(stats))
	for _, name := range statOrder {
		if v, ok := stats[name]; ok {
			out = append(out, statPair{statLabel(name), strconv.Itoa(v)})
		}
	}
	for _, name := range slices.Sorted(maps.Keys(stats)) {
		if _, known := statLabels[name]; !known {
			out = append(out, statPair{name, strconv.Itoa(stats[name])})
		}
	}
	return out
}

// speciesStats converts record stats to a name to value map.
func speciesStats(s *model.Species) map[string]int {
	if s == nil {
		return nil
	}
	m := make(map[string]int, len(s.Stats))
	for _, st := range s.Stats {
		m[st.Stat.Name] = st.BaseStat
	}
	return m
}
