package roster

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-clinic-roster/internal/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

// Recorder recibe métricas del resolver. metrics.Roster lo implementa.
type Recorder interface {
	ObserveResolve(role string, err error, d time.Duration, entries int)
	RecordSkipped(reason string)
	RecordFetch(op string, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveResolve(string, error, time.Duration, int) {}
func (nopRecorder) RecordSkipped(string)                             {}
func (nopRecorder) RecordFetch(string, error)                        {}

type Options struct {
	Logger   logger.Logger
	Recorder Recorder
	Locale   language.Tag // zero => DefaultLocale
}

type Service struct {
	store  RecordStore
	log    logger.Logger
	rec    Recorder
	locale language.Tag
	now    func() time.Time
}

func NewService(store RecordStore, opts Options) *Service {
	s := &Service{
		store:  store,
		log:    opts.Logger,
		rec:    opts.Recorder,
		locale: opts.Locale,
		now:    time.Now,
	}
	if s.log == nil {
		s.log = logger.NewNop()
	}
	if s.rec == nil {
		s.rec = nopRecorder{}
	}
	if s.locale == language.Und {
		s.locale = DefaultLocale
	}
	return s
}

type ResolveInput struct {
	SearchTerm   string
	Role         Role
	ActingUserID string
}

// Resolve arma el roster completo para (término, rol, usuario).
// Cualquier fetch fallido aborta todo y devuelve *FetchError.
func (s *Service) Resolve(ctx context.Context, in ResolveInput) ([]RosterEntry, error) {
	userID := strings.TrimSpace(in.ActingUserID)
	term := strings.TrimSpace(in.SearchTerm)
	if userID == "" {
		return nil, ErrInvalidInput
	}

	started := s.now()
	log := s.log.With(map[string]any{
		"resolution_id": uuid.NewString(),
		"role":          string(in.Role),
		"user_id":       userID,
	})

	var (
		records []PetRecord
		err     error
	)
	switch in.Role {
	case RoleOwner:
		records, err = s.fetchOwned(ctx, userID, term)
	case RoleVeterinarian:
		records, err = s.fetchCaregiver(ctx, userID, term)
	default:
		return nil, ErrInvalidInput
	}
	if err != nil {
		s.rec.ObserveResolve(string(in.Role), err, s.now().Sub(started), 0)
		log.Error("roster: resolution failed", map[string]any{"error": err})
		return nil, err
	}

	now := s.now()
	entries := make([]RosterEntry, 0, len(records))
	for _, p := range records {
		if reason := malformedReason(p); reason != "" {
			s.rec.RecordSkipped(reason)
			log.Warn("roster: skipping malformed record", map[string]any{
				"pet_id": p.ID,
				"reason": reason,
			})
			continue
		}
		entries = append(entries, Assemble(p, now))
	}

	out := Finalize(entries, term, s.locale)

	elapsed := s.now().Sub(started)
	s.rec.ObserveResolve(string(in.Role), nil, elapsed, len(out))
	log.Debug("roster: resolved", map[string]any{
		"entries":  len(out),
		"fetched":  len(records),
		"duration": elapsed.String(),
	})
	return out, nil
}

func (s *Service) fetchOwned(ctx context.Context, ownerID, term string) ([]PetRecord, error) {
	return s.fetchPets(ctx, OpFetchOwnedPets, PetFilter{
		OwnerID:      ownerID,
		NameContains: term,
	})
}

// fetchCaregiver corre dos ramas en paralelo: por nombre de mascota y por
// nombre de dueño (lookup de ids y luego mascotas). El merge es por pet ID.
func (s *Service) fetchCaregiver(ctx context.Context, caregiverID, term string) ([]PetRecord, error) {
	var byName, byOwner []PetRecord

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		byName, err = s.fetchPets(gctx, OpFetchPetsByName, PetFilter{
			CaregiverID:  caregiverID,
			NameContains: term,
		})
		return err
	})

	if term != "" {
		g.Go(func() error {
			ownerIDs, err := s.store.FetchOwnerIDsByNameContains(gctx, term)
			s.rec.RecordFetch(OpFetchOwnerIDs, err)
			if err != nil {
				return &FetchError{Op: OpFetchOwnerIDs, Err: err}
			}
			if len(ownerIDs) == 0 {
				return nil
			}
			byOwner, err = s.fetchPets(gctx, OpFetchPetsByOwner, PetFilter{
				CaregiverID: caregiverID,
				OwnerIDIn:   ownerIDs,
			})
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mergeByID(byName, byOwner), nil
}

func (s *Service) fetchPets(ctx context.Context, op string, f PetFilter) ([]PetRecord, error) {
	items, err := s.store.FetchPets(ctx, f, OrderByName)
	s.rec.RecordFetch(op, err)
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			return nil, err
		}
		return nil, &FetchError{Op: op, Err: err}
	}
	return items, nil
}

// mergeByID une listas por pet ID; ante duplicado gana el último.
// Conserva el orden de primera aparición para que el resultado sea determinista.
func mergeByID(lists ...[]PetRecord) []PetRecord {
	idx := map[string]int{}
	out := make([]PetRecord, 0)
	for _, list := range lists {
		for _, p := range list {
			if p.ID == "" {
				// sin identidad no hay dedup posible; se descarta luego como malformado
				out = append(out, p)
				continue
			}
			if i, ok := idx[p.ID]; ok {
				out[i] = p
				continue
			}
			idx[p.ID] = len(out)
			out = append(out, p)
		}
	}
	return out
}
