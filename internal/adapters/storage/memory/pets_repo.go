package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-clinic-roster/internal/domain/roster"
)

type petEntry struct {
	rec         roster.PetRecord
	caregiverID string
}

// PetStore es un roster.RecordStore en memoria para dev y tests de integración.
type PetStore struct {
	mu     sync.RWMutex
	byID   map[string]petEntry
	owners map[string]roster.OwnerRef
}

func NewPetStore() *PetStore {
	return &PetStore{
		byID:   make(map[string]petEntry),
		owners: make(map[string]roster.OwnerRef),
	}
}

// Put inserta o reemplaza una mascota y registra a su dueño.
func (s *PetStore) Put(caregiverID string, p roster.PetRecord) error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p.Appointments = append([]roster.AppointmentRecord(nil), p.Appointments...)
	s.byID[p.ID] = petEntry{rec: p, caregiverID: strings.TrimSpace(caregiverID)}
	if p.Owner.ID != "" {
		s.owners[p.Owner.ID] = p.Owner
	}
	return nil
}

// PutOwner registra un dueño sin mascotas (o con datos actualizados).
func (s *PetStore) PutOwner(o roster.OwnerRef) error {
	if strings.TrimSpace(o.ID) == "" {
		return errors.New("owner id required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.owners[o.ID] = o
	return nil
}

func (s *PetStore) FetchPets(ctx context.Context, f roster.PetFilter, order roster.OrderBy) ([]roster.PetRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var ownerIn map[string]struct{}
	if len(f.OwnerIDIn) > 0 {
		ownerIn = make(map[string]struct{}, len(f.OwnerIDIn))
		for _, id := range f.OwnerIDIn {
			ownerIn[id] = struct{}{}
		}
	}
	term := strings.ToLower(strings.TrimSpace(f.NameContains))

	out := make([]roster.PetRecord, 0)
	for _, e := range s.byID {
		if f.CaregiverID != "" && e.caregiverID != f.CaregiverID {
			continue
		}
		if f.OwnerID != "" && e.rec.Owner.ID != f.OwnerID {
			continue
		}
		if ownerIn != nil {
			if _, ok := ownerIn[e.rec.Owner.ID]; !ok {
				continue
			}
		}
		if term != "" && !strings.Contains(strings.ToLower(e.rec.Name), term) {
			continue
		}

		p := e.rec
		p.Owner = s.ownerLocked(p.Owner)
		p.Appointments = append([]roster.AppointmentRecord(nil), e.rec.Appointments...)
		out = append(out, p)
	}

	sortRecords(out, order)
	return out, nil
}

func (s *PetStore) FetchOwnerIDsByNameContains(ctx context.Context, term string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0)
	for id, o := range s.owners {
		if strings.Contains(strings.ToLower(o.Name), term) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ownerLocked devuelve la versión registrada del dueño (simula el join).
func (s *PetStore) ownerLocked(ref roster.OwnerRef) roster.OwnerRef {
	if o, ok := s.owners[ref.ID]; ok {
		return o
	}
	return ref
}

// Orden estable por el campo pedido; ID desempata.
func sortRecords(items []roster.PetRecord, order roster.OrderBy) {
	less := func(a, b roster.PetRecord) bool {
		switch order.Field {
		case "name":
			if a.Name != b.Name {
				return a.Name < b.Name
			}
		}
		return a.ID < b.ID
	}
	sort.SliceStable(items, func(i, j int) bool {
		if order.Ascending {
			return less(items[i], items[j])
		}
		return less(items[j], items[i])
	})
}
