package roster

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// fakeStore filtra en memoria y cuenta llamadas. Los errores se inyectan por
// operación: failPets decide a partir del filtro recibido.
type fakeStore struct {
	mu sync.Mutex

	pets   []fakePet
	owners []OwnerRef

	petCalls   []PetFilter
	ownerCalls []string

	failPets   func(PetFilter) error
	failOwners error
}

type fakePet struct {
	caregiverID string
	rec         PetRecord
}

func (s *fakeStore) add(caregiverID string, p PetRecord) {
	s.pets = append(s.pets, fakePet{caregiverID: caregiverID, rec: p})
}

func (s *fakeStore) FetchPets(ctx context.Context, f PetFilter, _ OrderBy) ([]PetRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.petCalls = append(s.petCalls, f)
	if s.failPets != nil {
		if err := s.failPets(f); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var in map[string]bool
	if len(f.OwnerIDIn) > 0 {
		in = map[string]bool{}
		for _, id := range f.OwnerIDIn {
			in[id] = true
		}
	}
	term := strings.ToLower(f.NameContains)

	out := []PetRecord{}
	for _, fp := range s.pets {
		p := fp.rec
		if f.CaregiverID != "" && fp.caregiverID != f.CaregiverID {
			continue
		}
		if f.OwnerID != "" && p.Owner.ID != f.OwnerID {
			continue
		}
		if in != nil && !in[p.Owner.ID] {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeStore) FetchOwnerIDsByNameContains(ctx context.Context, term string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ownerCalls = append(s.ownerCalls, term)
	if s.failOwners != nil {
		return nil, s.failOwners
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	term = strings.ToLower(term)
	var ids []string
	for _, o := range s.owners {
		if strings.Contains(strings.ToLower(o.Name), term) {
			ids = append(ids, o.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *fakeStore) calls() (pets []PetFilter, owners []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PetFilter(nil), s.petCalls...), append([]string(nil), s.ownerCalls...)
}

// spyRecorder guarda lo que el servicio reporta.
type spyRecorder struct {
	mu       sync.Mutex
	skipped  []string
	fetches  map[string]int
	failures map[string]int
	resolves int
}

func newSpyRecorder() *spyRecorder {
	return &spyRecorder{fetches: map[string]int{}, failures: map[string]int{}}
}

func (r *spyRecorder) ObserveResolve(string, error, time.Duration, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolves++
}

func (r *spyRecorder) RecordSkipped(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped = append(r.skipped, reason)
}

func (r *spyRecorder) RecordFetch(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches[op]++
	if err != nil {
		r.failures[op]++
	}
}
