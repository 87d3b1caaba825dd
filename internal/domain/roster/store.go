package roster

import "context"

// PetFilter: campos vacíos no filtran. NameContains es substring sin distinguir mayúsculas.
type PetFilter struct {
	CaregiverID  string
	OwnerID      string
	OwnerIDIn    []string
	NameContains string
}

type OrderBy struct {
	Field     string
	Ascending bool
}

// OrderByName es el orden que se pide al store; el orden final lo decide Finalize.
var OrderByName = OrderBy{Field: "name", Ascending: true}

// RecordStore es el backend remoto (solo lectura para este módulo).
// Reintentos y timeouts son responsabilidad de cada implementación.
type RecordStore interface {
	FetchPets(ctx context.Context, filter PetFilter, order OrderBy) ([]PetRecord, error)
	FetchOwnerIDsByNameContains(ctx context.Context, term string) ([]string, error)
}
