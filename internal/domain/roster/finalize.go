package roster

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale se usa cuando no se configura otro.
var DefaultLocale = language.Spanish

// Finalize acota por término (nombre de mascota o de dueño) y ordena por
// nombre de mascota con collation del locale; el pet ID desempata.
// Es la única fuente del orden mostrado: no se confía en el orden del store.
func Finalize(entries []RosterEntry, term string, tag language.Tag) []RosterEntry {
	out := narrow(entries, term)

	// collate.Collator no es seguro para uso concurrente: uno por llamada.
	c := collate.New(tag, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		if cmp := c.CompareString(out[i].PetName, out[j].PetName); cmp != 0 {
			return cmp < 0
		}
		return out[i].PetID < out[j].PetID
	})
	return out
}

func narrow(entries []RosterEntry, term string) []RosterEntry {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]RosterEntry, 0, len(entries))
	for _, e := range entries {
		if term != "" &&
			!strings.Contains(strings.ToLower(e.PetName), term) &&
			!strings.Contains(strings.ToLower(e.OwnerName), term) {
			continue
		}
		out = append(out, e)
	}
	return out
}
