package migrationdomain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	documentdomain "github.com/raynzz/eventdesk/app/modules/document/domain"
	eventdomain "github.com/raynzz/eventdesk/app/modules/event/domain"
	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// Legacy collections.
const (
	LegacyProviders    = "proveedores"
	LegacyTeamMembers  = "integrantes"
	LegacyEvents       = "eventos"
	LegacyRequirements = "eventos_requisitos"
	LegacyParticipants = "eventos_participantes"
)

var (
	ErrMissingName      = errors.New("record has no name")
	ErrMissingReference = errors.New("missing reference")
	ErrUnmappedID       = errors.New("referenced record was not migrated")
	ErrInvalidDate      = errors.New("invalid date")
)

// Record is a legacy record.
type Record interface {
	SourceID() directus.ID
}

// IDMap remembers the id each migrated record received, per legacy collection.
type IDMap map[string]map[directus.ID]directus.ID

// Set records that source id src of collection became dst.
func (m IDMap) Set(collection string, src, dst directus.ID) {
	if m[collection] == nil {
		m[collection] = make(map[directus.ID]directus.ID)
	}
	m[collection][src] = dst
}

// Resolve maps a legacy reference to its new id.
func (m IDMap) Resolve(collection, field string, src directus.ID) (directus.ID, error) {
	if src.IsZero() {
		return "", fmt.Errorf("%s: %w", field, ErrMissingReference)
	}
	dst, ok := m[collection][src]
	if !ok {
		return "", fmt.Errorf("%s %s: %w", field, src, ErrUnmappedID)
	}
	return dst, nil
}

// LegacyProvider is a record of proveedores.
type LegacyProvider struct {
	ID        directus.ID `json:"id"`
	Nombre    string      `json:"nombre"`
	Contacto  string      `json:"contacto"`
	Email     string      `json:"email"`
	Telefono  string      `json:"telefono"`
	Categoria string      `json:"categoria"`
	RUT       string      `json:"rut"`
	Estado    string      `json:"estado"`
	Notas     string      `json:"notas"`
}

// SourceID implements Record.
func (p LegacyProvider) SourceID() directus.ID { return p.ID }

// ToProvider maps the record onto the providers collection.
func (p LegacyProvider) ToProvider() (providerdomain.Provider, error) {
	name := strings.TrimSpace(p.Nombre)
	if name == "" {
		return providerdomain.Provider{}, ErrMissingName
	}
	return providerdomain.Provider{
		Name:        name,
		ContactName: strings.TrimSpace(p.Contacto),
		Email:       strings.TrimSpace(p.Email),
		Phone:       strings.TrimSpace(p.Telefono),
		Category:    strings.TrimSpace(p.Categoria),
		TaxID:       strings.TrimSpace(p.RUT),
		Status:      providerStatus(p.Estado),
		Notes:       p.Notas,
	}, nil
}

// LegacyTeamMember is a record of integrantes.
type LegacyTeamMember struct {
	ID          directus.ID `json:"id"`
	ProveedorID directus.ID `json:"proveedor_id"`
	Nombre      string      `json:"nombre"`
	Apellido    string      `json:"apellido"`
	Email       string      `json:"email"`
	Telefono    string      `json:"telefono"`
	Cargo       string      `json:"cargo"`
	Documento   string      `json:"documento"`
}

func (m LegacyTeamMember) SourceID() directus.ID { return m.ID }

// ToTeamMember maps the record onto team_members. A missing surname is taken
// from the last word of nombre.
func (m LegacyTeamMember) ToTeamMember(ids IDMap) (providerdomain.TeamMember, error) {
	first, last := strings.TrimSpace(m.Nombre), strings.TrimSpace(m.Apellido)
	if first == "" {
		return providerdomain.TeamMember{}, ErrMissingName
	}
	if last == "" {
		if i := strings.LastIndex(first, " "); i > 0 {
			first, last = strings.TrimSpace(first[:i]), first[i+1:]
		}
	}
	providerID, err := ids.Resolve(LegacyProviders, "proveedor_id", m.ProveedorID)
	if err != nil {
		return providerdomain.TeamMember{}, err
	}
	return providerdomain.TeamMember{
		ProviderID:     providerID,
		FirstName:      first,
		LastName:       last,
		Email:          strings.TrimSpace(m.Email),
		Phone:          strings.TrimSpace(m.Telefono),
		Role:           strings.TrimSpace(m.Cargo),
		DocumentNumber: strings.TrimSpace(m.Documento),
	}, nil
}

// LegacyEvent is a record of eventos.
type LegacyEvent struct {
	ID          directus.ID `json:"id"`
	Nombre      string      `json:"nombre"`
	Descripcion string      `json:"descripcion"`
	Ubicacion   string      `json:"ubicacion"`
	FechaInicio string      `json:"fecha_inicio"`
	FechaFin    string      `json:"fecha_fin"`
	Estado      string      `json:"estado"`
	Capacidad   int         `json:"capacidad"`
	Organizador string      `json:"organizador"`
}

func (e LegacyEvent) SourceID() directus.ID { return e.ID }

// ToEvent maps the record onto events.
func (e LegacyEvent) ToEvent() (eventdomain.Event, error) {
	name := strings.TrimSpace(e.Nombre)
	if name == "" {
		return eventdomain.Event{}, ErrMissingName
	}
	start, err := ParseLegacyDate(e.FechaInicio)
	if err != nil {
		return eventdomain.Event{}, fmt.Errorf("fecha_inicio: %w", err)
	}
	end, err := ParseLegacyDate(e.FechaFin)
	if err != nil {
		return eventdomain.Event{}, fmt.Errorf("fecha_fin: %w", err)
	}
	return eventdomain.Event{
		Name:        name,
		Description: e.Descripcion,
		Location:    strings.TrimSpace(e.Ubicacion),
		StartDate:   start,
		EndDate:     end,
		Status:      eventStatus(e.Estado),
		Capacity:    max(e.Capacidad, 0),
		Organizer:   strings.TrimSpace(e.Organizador),
	}, nil
}

// LegacyRequirement is a record of eventos_requisitos. Requirements without
// an event become global.
type LegacyRequirement struct {
	ID          directus.ID `json:"id"`
	EventoID    directus.ID `json:"evento_id"`
	Nombre      string      `json:"nombre"`
	Descripcion string      `json:"descripcion"`
	Obligatorio bool        `json:"obligatorio"`
}

func (r LegacyRequirement) SourceID() directus.ID { return r.ID }

// ToRequirement maps the record onto document_requirements.
func (r LegacyRequirement) ToRequirement(ids IDMap) (documentdomain.Requirement, error) {
	name := strings.TrimSpace(r.Nombre)
	if name == "" {
		return documentdomain.Requirement{}, ErrMissingName
	}
	req := documentdomain.Requirement{
		Name:        name,
		Description: r.Descripcion,
		IsGlobal:    r.EventoID.IsZero(),
		AppliesTo:   documentdomain.AppliesToProvider,
		Mandatory:   r.Obligatorio,
	}
	if !req.IsGlobal {
		eventID, err := ids.Resolve(LegacyEvents, "evento_id", r.EventoID)
		if err != nil {
			return documentdomain.Requirement{}, err
		}
		req.EventID = eventID
	}
	return req, nil
}

// LegacyParticipant is a record of eventos_participantes.
type LegacyParticipant struct {
	ID          directus.ID `json:"id"`
	EventoID    directus.ID `json:"evento_id"`
	ProveedorID directus.ID `json:"proveedor_id"`
	Estado      string      `json:"estado"`
	Notas       string      `json:"notas"`
}

func (p LegacyParticipant) SourceID() directus.ID { return p.ID }

// ToParticipant maps the record onto event_participants.
func (p LegacyParticipant) ToParticipant(ids IDMap) (eventdomain.Participant, error) {
	eventID, err := ids.Resolve(LegacyEvents, "evento_id", p.EventoID)
	if err != nil {
		return eventdomain.Participant{}, err
	}
	providerID, err := ids.Resolve(LegacyProviders, "proveedor_id", p.ProveedorID)
	if err != nil {
		return eventdomain.Participant{}, err
	}
	return eventdomain.Participant{
		EventID:    eventID,
		ProviderID: providerID,
		Status:     reviewStatus(p.Estado),
		Notes:      p.Notas,
	}, nil
}

var legacyLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"02/01/2006",
}

// ParseLegacyDate reads the date formats found in the legacy collections.
// Zones default to UTC. An empty value is nil.
func ParseLegacyDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range legacyLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Legacy statuses were free text; known values in either language map onto
// the fixed vocabularies and anything else gets the default.
func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func providerStatus(s string) providerdomain.Status {
	switch normalize(s) {
	case "inactivo", "inactiva", "inactive", "baja":
		return providerdomain.StatusInactive
	}
	return providerdomain.StatusActive
}

func eventStatus(s string) eventdomain.Status {
	switch normalize(s) {
	case "publicado", "activo", "published":
		return eventdomain.StatusPublished
	case "cancelado", "cancelled", "canceled":
		return eventdomain.StatusCancelled
	case "finalizado", "completado", "terminado", "completed":
		return eventdomain.StatusCompleted
	}
	return eventdomain.StatusDraft
}

func reviewStatus(s string) eventdomain.ReviewStatus {
	switch normalize(s) {
	case "aprobado", "approved":
		return eventdomain.ReviewApproved
	case "rechazado", "rejected":
		return eventdomain.ReviewRejected
	}
	return eventdomain.ReviewPending
}
