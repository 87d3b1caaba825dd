package roster

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const (
	OpFetchPetsByName  = "fetch_pets_by_name"
	OpFetchOwnerIDs    = "fetch_owner_ids"
	OpFetchPetsByOwner = "fetch_pets_by_owner"
	OpFetchOwnedPets   = "fetch_owned_pets"
)

// FetchError envuelve cualquier falla del store. Si aparece, no hay roster parcial.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("roster: %s failed: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// malformedReason devuelve "" si el record tiene identidad suficiente para mostrarse.
func malformedReason(p PetRecord) string {
	switch {
	case p.ID == "":
		return "missing_id"
	case p.Name == "":
		return "missing_name"
	default:
		return ""
	}
}
