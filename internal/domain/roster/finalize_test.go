package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func TestFinalize_NarrowsByPetOrOwnerName(t *testing.T) {
	in := []RosterEntry{
		{PetID: "1", PetName: "Luna", OwnerName: "Carla"},
		{PetID: "2", PetName: "Rocky", OwnerName: "Luis"},
		{PetID: "3", PetName: "Zeus", OwnerName: "Marta"},
	}

	got := Finalize(in, "LU", DefaultLocale)
	assert.Equal(t, []string{"1", "2"}, petIDs(got))

	assert.Len(t, Finalize(in, "  ", DefaultLocale), 3)
}

func TestFinalize_OrderIsNonDecreasing(t *testing.T) {
	in := []RosterEntry{
		{PetID: "a", PetName: "toby"},
		{PetID: "b", PetName: "Álex"},
		{PetID: "c", PetName: "Bruno"},
		{PetID: "d", PetName: "ñoño"},
		{PetID: "e", PetName: "Nilo"},
		{PetID: "f", PetName: "bruno"},
	}

	got := Finalize(in, "", language.Spanish)
	c := collate.New(language.Spanish, collate.IgnoreCase)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, c.CompareString(got[i-1].PetName, got[i].PetName), 0,
			"%q before %q", got[i-1].PetName, got[i].PetName)
	}
	// "Bruno" y "bruno" son iguales ignorando mayúsculas: desempata el ID
	assert.Equal(t, []string{"b", "c", "f", "e", "d", "a"}, petIDs(got))
}

func TestFinalize_Empty(t *testing.T) {
	got := Finalize(nil, "x", DefaultLocale)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
