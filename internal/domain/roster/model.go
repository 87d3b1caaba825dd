package roster

import (
	"fmt"
	"strings"
	"time"
)

// Role define quién consulta el roster.
type Role string

const (
	RoleOwner        Role = "owner"
	RoleVeterinarian Role = "veterinarian"
)

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleOwner:
		return RoleOwner, nil
	case RoleVeterinarian:
		return RoleVeterinarian, nil
	default:
		return "", ErrInvalidInput
	}
}

// AppointmentStatus es enumeración cerrada; en la base viene de una tabla de lookup.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusPending   AppointmentStatus = "pending"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

var statusLabels = map[string]AppointmentStatus{
	"scheduled":  StatusScheduled,
	"programada": StatusScheduled,
	"agendada":   StatusScheduled,
	"confirmed":  StatusConfirmed,
	"confirmada": StatusConfirmed,
	"pending":    StatusPending,
	"pendiente":  StatusPending,
	"completed":  StatusCompleted,
	"completada": StatusCompleted,
	"cancelled":  StatusCancelled,
	"canceled":   StatusCancelled,
	"cancelada":  StatusCancelled,
	"no_show":    StatusNoShow,
	"no-show":    StatusNoShow,
	"noshow":     StatusNoShow,
	"no show":    StatusNoShow,
	"no asistió": StatusNoShow,
	"no asistio": StatusNoShow,
}

// ParseAppointmentStatus acepta las etiquetas de la tabla de estados (es/en).
func ParseAppointmentStatus(label string) (AppointmentStatus, error) {
	s, ok := statusLabels[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return "", fmt.Errorf("unknown appointment status %q", label)
	}
	return s, nil
}

// ignored: canceladas y no-show no cuentan ni como historia ni como próxima cita.
func (s AppointmentStatus) ignored() bool {
	return s == StatusCancelled || s == StatusNoShow
}

func (s AppointmentStatus) upcoming() bool {
	return s == StatusScheduled || s == StatusConfirmed || s == StatusPending
}

type OwnerRef struct {
	ID    string
	Name  string
	Phone string // opcional
}

type SpeciesRef struct {
	Name string
}

type AppointmentRecord struct {
	ID     string
	Time   time.Time
	Status AppointmentStatus
}

// PetRecord es lo que devuelve el store remoto, ya decodificado y tipado.
type PetRecord struct {
	ID        string
	Name      string
	Breed     string
	BirthDate *time.Time
	Status    string // estado clínico; valores no reconocidos pasan tal cual

	Owner        OwnerRef
	Species      SpeciesRef
	Appointments []AppointmentRecord
}

// RosterEntry es una fila lista para mostrar. Se reconstruye en cada consulta.
type RosterEntry struct {
	PetID                string `json:"pet_id"`
	PetName              string `json:"pet_name"`
	OwnerID              string `json:"owner_id"`
	OwnerName            string `json:"owner_name"`
	OwnerPhone           string `json:"owner_phone"`
	SpeciesName          string `json:"species_name"`
	Breed                string `json:"breed"`
	AgeLabel             string `json:"age_label"`
	LastVisitLabel       string `json:"last_visit_label"`
	NextAppointmentLabel string `json:"next_appointment_label"`
	Status               string `json:"status"`
}
