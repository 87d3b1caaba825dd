package roster

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pet-clinic-roster/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/roster", getRosterHandler(svc))
}

// rosterResponse envuelve la lista para poder agregar metadatos sin romper clientes.
type rosterResponse struct {
	Role    Role          `json:"role"`
	Query   string        `json:"query"`
	Count   int           `json:"count"`
	Entries []RosterEntry `json:"entries"`
}

// getRosterHandler godoc
// @Summary Roster de pacientes
// @Description Devuelve las mascotas visibles para el usuario autenticado. Dueño: sus mascotas filtradas por nombre. Veterinario: pacientes a su cargo que coinciden por nombre de mascota o de dueño, sin duplicados. Orden por nombre de mascota. Si falla cualquier consulta al backend no se devuelve un roster parcial. Autenticación: `X-Debug-User-ID` + `X-Debug-User-Role` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags roster
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-User-Role header string false "Solo en modo dev, owner | veterinarian"
// @Param Authorization header string false "Bearer token en producción"
// @Param q query string false "Texto a buscar (substring, sin distinguir mayúsculas)"
// @Success 200 {object} rosterResponse
// @Failure 400 {string} string "invalid role"
// @Failure 401 {string} string "unauthorized"
// @Failure 502 {string} string "upstream error"
// @Router /roster [get]
func getRosterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		role, err := ParseRole(claims.Role)
		if err != nil {
			http.Error(w, "invalid role", http.StatusBadRequest)
			return
		}

		q := strings.TrimSpace(r.URL.Query().Get("q"))

		entries, err := svc.Resolve(r.Context(), ResolveInput{
			SearchTerm:   q,
			Role:         role,
			ActingUserID: claims.UserID,
		})
		if err != nil {
			var fe *FetchError
			switch {
			case errors.As(err, &fe):
				http.Error(w, "upstream error", http.StatusBadGateway)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, rosterResponse{
			Role:    role,
			Query:   q,
			Count:   len(entries),
			Entries: entries,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
