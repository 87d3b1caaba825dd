package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"pet-clinic-roster/internal/domain/roster"

	"github.com/google/uuid"
)

// Fixture es el formato de SEED_FILE.
type Fixture struct {
	Owners []fixtureOwner `json:"owners"`
	Pets   []fixturePet   `json:"pets"`
}

type fixtureOwner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type fixturePet struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Breed        string               `json:"breed"`
	BirthDate    string               `json:"birth_date"` // YYYY-MM-DD opcional
	Status       string               `json:"status"`
	OwnerID      string               `json:"owner_id"`
	CaregiverID  string               `json:"caregiver_id"`
	Species      string               `json:"species"`
	Appointments []fixtureAppointment `json:"appointments"`
}

type fixtureAppointment struct {
	ID     string `json:"id"`
	Time   string `json:"time"` // RFC3339
	Status string `json:"status"`
}

// LoadFixtureFile abre path y carga su contenido en s.
func LoadFixtureFile(s *PetStore, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return LoadFixture(s, f)
}

// LoadFixture carga dueños y mascotas. Devuelve cuántas mascotas se cargaron.
// IDs faltantes se generan.
func LoadFixture(s *PetStore, r io.Reader) (int, error) {
	var fx Fixture
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fx); err != nil {
		return 0, fmt.Errorf("fixture: decode: %w", err)
	}

	owners := make(map[string]roster.OwnerRef, len(fx.Owners))
	for _, o := range fx.Owners {
		ref := roster.OwnerRef{ID: o.ID, Name: o.Name, Phone: o.Phone}
		if err := s.PutOwner(ref); err != nil {
			return 0, fmt.Errorf("fixture: owner %q: %w", o.Name, err)
		}
		owners[o.ID] = ref
	}

	for i, fp := range fx.Pets {
		p, err := fp.toRecord(owners)
		if err != nil {
			return i, fmt.Errorf("fixture: pet #%d: %w", i, err)
		}
		if err := s.Put(fp.CaregiverID, p); err != nil {
			return i, fmt.Errorf("fixture: pet #%d: %w", i, err)
		}
	}
	return len(fx.Pets), nil
}

func (fp fixturePet) toRecord(owners map[string]roster.OwnerRef) (roster.PetRecord, error) {
	p := roster.PetRecord{
		ID:      strings.TrimSpace(fp.ID),
		Name:    strings.TrimSpace(fp.Name),
		Breed:   strings.TrimSpace(fp.Breed),
		Status:  strings.TrimSpace(fp.Status),
		Species: roster.SpeciesRef{Name: strings.TrimSpace(fp.Species)},
		Owner:   roster.OwnerRef{ID: fp.OwnerID},
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if o, ok := owners[fp.OwnerID]; ok {
		p.Owner = o
	}

	if bd := strings.TrimSpace(fp.BirthDate); bd != "" {
		t, err := time.Parse("2006-01-02", bd)
		if err != nil {
			return roster.PetRecord{}, fmt.Errorf("birth_date must be YYYY-MM-DD: %w", err)
		}
		p.BirthDate = &t
	}

	for _, fa := range fp.Appointments {
		at, err := time.Parse(time.RFC3339, fa.Time)
		if err != nil {
			return roster.PetRecord{}, fmt.Errorf("appointment time must be RFC3339: %w", err)
		}
		st, err := roster.ParseAppointmentStatus(fa.Status)
		if err != nil {
			return roster.PetRecord{}, err
		}
		id := strings.TrimSpace(fa.ID)
		if id == "" {
			id = uuid.NewString()
		}
		p.Appointments = append(p.Appointments, roster.AppointmentRecord{ID: id, Time: at, Status: st})
	}
	return p, nil
}
