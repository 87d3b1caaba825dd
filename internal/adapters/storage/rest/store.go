package rest

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"pet-clinic-roster/internal/domain/roster"
	"pet-clinic-roster/internal/platform/httpclient"
)

const (
	petsPath   = "/rest/v1/pets"
	ownersPath = "/rest/v1/owners"

	// select anidado: dueño, especie y citas con su estado (tabla de lookup)
	petsSelect = "id,name,breed,birth_date,status," +
		"owner:owners(id,full_name,phone)," +
		"species(name)," +
		"appointments(id,appointment_time,status:appointment_statuses(name))"
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Store implementa roster.RecordStore sobre la API REST del backend hosteado
// (sintaxis PostgREST).
type Store struct {
	http *httpclient.Client
}

func NewStore(cfg Config) (*Store, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, fmt.Errorf("rest: base url required")
	}
	hc, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	hc.Strict = true
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		hc.DefaultHeaders = map[string]string{
			"apikey":        key,
			"Authorization": "Bearer " + key,
		}
	}
	return &Store{http: hc}, nil
}

func (s *Store) FetchPets(ctx context.Context, f roster.PetFilter, order roster.OrderBy) ([]roster.PetRecord, error) {
	var rows []petRow
	if err := s.http.GetJSON(ctx, petsPath, petsQuery(f, order), nil, &rows); err != nil {
		return nil, err
	}
	return decodePets(rows)
}

func (s *Store) FetchOwnerIDsByNameContains(ctx context.Context, term string) ([]string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("select", "id")
	q.Set("full_name", "ilike."+ilikeValue(term))

	var rows []ownerIDRow
	if err := s.http.GetJSON(ctx, ownersPath, q, nil, &rows); err != nil {
		return nil, err
	}
	return decodeOwnerIDs(rows)
}

func petsQuery(f roster.PetFilter, order roster.OrderBy) url.Values {
	q := url.Values{}
	q.Set("select", petsSelect)

	if v := strings.TrimSpace(f.CaregiverID); v != "" {
		q.Set("caregiver_id", "eq."+v)
	}
	if v := strings.TrimSpace(f.OwnerID); v != "" {
		q.Set("owner_id", "eq."+v)
	}
	if len(f.OwnerIDIn) > 0 {
		quoted := make([]string, 0, len(f.OwnerIDIn))
		for _, id := range f.OwnerIDIn {
			quoted = append(quoted, quoteListValue(id))
		}
		// owner_id puede aparecer dos veces (eq + in); el backend aplica ambos
		q.Add("owner_id", "in.("+strings.Join(quoted, ",")+")")
	}
	if v := strings.TrimSpace(f.NameContains); v != "" {
		q.Set("name", "ilike."+ilikeValue(v))
	}

	field := order.Field
	if field == "" {
		field = "name"
	}
	dir := "asc"
	if !order.Ascending {
		dir = "desc"
	}
	q.Set("order", field+"."+dir+",id.asc")
	return q
}

// ilikeValue arma *term* quitando los comodines propios del término.
func ilikeValue(term string) string {
	r := strings.NewReplacer("*", "", "%", "")
	return "*" + r.Replace(term) + "*"
}

// quoteListValue protege valores con coma/paréntesis dentro de in.(...).
func quoteListValue(v string) string {
	if strings.ContainsAny(v, `,()"\ `) {
		r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
		return `"` + r.Replace(v) + `"`
	}
	return v
}
