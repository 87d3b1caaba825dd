package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-clinic-roster/internal/domain/roster"
)

// PetsRepo implementa roster.RecordStore contra Postgres.
type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

var orderColumns = map[string]string{
	"name":       "p.name",
	"created_at": "p.created_at",
}

// buildPetsQuery arma el SELECT con placeholders numerados.
func buildPetsQuery(f roster.PetFilter, order roster.OrderBy) (string, []any) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			p.id, p.name, COALESCE(p.breed, ''), p.birth_date, COALESCE(p.status, ''),
			o.id, o.full_name, COALESCE(o.phone, ''),
			COALESCE(s.name, '')
		FROM pets p
		JOIN owners o ON o.id = p.owner_id
		LEFT JOIN species s ON s.id = p.species_id
		WHERE TRUE
	`)

	args := []any{}
	argN := 1

	if v := strings.TrimSpace(f.CaregiverID); v != "" {
		sb.WriteString(fmt.Sprintf(" AND p.caregiver_id = $%d", argN))
		args = append(args, v)
		argN++
	}
	if v := strings.TrimSpace(f.OwnerID); v != "" {
		sb.WriteString(fmt.Sprintf(" AND p.owner_id = $%d", argN))
		args = append(args, v)
		argN++
	}
	if len(f.OwnerIDIn) > 0 {
		placeholders := make([]string, 0, len(f.OwnerIDIn))
		for _, id := range f.OwnerIDIn {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, id)
			argN++
		}
		sb.WriteString(" AND p.owner_id IN (" + strings.Join(placeholders, ",") + ")")
	}
	if v := strings.TrimSpace(f.NameContains); v != "" {
		sb.WriteString(fmt.Sprintf(` AND p.name ILIKE $%d ESCAPE '\'`, argN))
		args = append(args, likePattern(v))
		argN++
	}

	col, ok := orderColumns[order.Field]
	if !ok {
		col = "p.name"
	}
	dir := "ASC"
	if !order.Ascending {
		dir = "DESC"
	}
	sb.WriteString(fmt.Sprintf(" ORDER BY %s %s, p.id ASC", col, dir))

	return sb.String(), args
}

func (r *PetsRepo) FetchPets(ctx context.Context, f roster.PetFilter, order roster.OrderBy) ([]roster.PetRecord, error) {
	query, args := buildPetsQuery(f, order)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]roster.PetRecord, 0)
	index := map[string]int{}
	for rows.Next() {
		var p roster.PetRecord
		var bd sql.NullTime
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Breed,
			&bd,
			&p.Status,
			&p.Owner.ID,
			&p.Owner.Name,
			&p.Owner.Phone,
			&p.Species.Name,
		); err != nil {
			return nil, err
		}
		if bd.Valid {
			t := bd.Time
			// birth_date es DATE: pgx lo mapea a medianoche UTC
			p.BirthDate = &t
		}
		index[p.ID] = len(out)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return out, nil
	}
	if err := r.attachAppointments(ctx, out, index); err != nil {
		return nil, err
	}
	return out, nil
}

// attachAppointments trae las citas de todas las mascotas en una sola consulta.
func (r *PetsRepo) attachAppointments(ctx context.Context, pets []roster.PetRecord, index map[string]int) error {
	placeholders := make([]string, 0, len(pets))
	args := make([]any, 0, len(pets))
	for i, p := range pets {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, p.ID)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.pet_id, a.appointment_time, st.name
		FROM appointments a
		JOIN appointment_statuses st ON st.id = a.status_id
		WHERE a.pet_id IN (`+strings.Join(placeholders, ",")+`)
		ORDER BY a.appointment_time ASC, a.id ASC
	`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a roster.AppointmentRecord
		var petID, label string
		if err := rows.Scan(&a.ID, &petID, &a.Time, &label); err != nil {
			return err
		}
		st, err := roster.ParseAppointmentStatus(label)
		if err != nil {
			return fmt.Errorf("appointment %s: %w", a.ID, err)
		}
		a.Status = st

		i, ok := index[petID]
		if !ok {
			continue
		}
		pets[i].Appointments = append(pets[i].Appointments, a)
	}
	return rows.Err()
}

func (r *PetsRepo) FetchOwnerIDsByNameContains(ctx context.Context, term string) ([]string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id
		FROM owners
		WHERE full_name ILIKE $1 ESCAPE '\'
		ORDER BY id ASC
	`, likePattern(term))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// likePattern arma %term% escapando los comodines de LIKE.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
