package roster

import (
	"sort"
	"time"
)

// Classify devuelve la próxima cita y la última visita de una mascota.
//
// Se descartan canceladas y no-show. Próxima: la primera (ascendente) con
// hora > now y estado scheduled/confirmed/pending. Última: la más tardía con
// hora <= now y estado completed; las pasadas sin completar no son historia.
// Empates de hora se ordenan por ID.
func Classify(appts []AppointmentRecord, now time.Time) (next, last *AppointmentRecord) {
	kept := make([]AppointmentRecord, 0, len(appts))
	for _, a := range appts {
		if a.Status.ignored() {
			continue
		}
		kept = append(kept, a)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if !kept[i].Time.Equal(kept[j].Time) {
			return kept[i].Time.Before(kept[j].Time)
		}
		return kept[i].ID < kept[j].ID
	})

	for i := range kept {
		if kept[i].Time.After(now) && kept[i].Status.upcoming() {
			a := kept[i]
			next = &a
			break
		}
	}

	for i := len(kept) - 1; i >= 0; i-- {
		if !kept[i].Time.After(now) && kept[i].Status == StatusCompleted {
			a := kept[i]
			last = &a
			break
		}
	}

	return next, last
}
