package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category enum (stored values match the public form)
type Category string

const (
	Alumbrado    Category = "alumbrado"
	Pistas       Category = "pistas"
	Limpieza     Category = "limpieza"
	AguaDesague  Category = "agua_desague"
	Parques      Category = "parques"
	Senalizacion Category = "senalizacion"
	Otros        Category = "otros"
)

// Categories lists every valid incident category.
var Categories = []Category{
	Alumbrado, Pistas, Limpieza, AguaDesague, Parques, Senalizacion, Otros,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Status enum
type Status string

const (
	Pendiente Status = "pendiente"
	EnProceso Status = "en_proceso"
	Resuelto  Status = "resuelto"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case Pendiente, EnProceso, Resuelto:
		return true
	}
	return false
}

// Next returns the only legal forward transition for s. The second return
// is false when s is terminal (or unknown): resuelto has no next state and
// nothing ever moves backward.
func (s Status) Next() (Status, bool) {
	switch s {
	case Pendiente:
		return EnProceso, true
	case EnProceso:
		return Resuelto, true
	}
	return "", false
}

// Location is the embedded ubicacion subdocument. Coordinates are optional:
// a manually typed address with failed or skipped geocoding leaves both nil.
type Location struct {
	Lat       *float64 `bson:"lat" json:"lat"`
	Lng       *float64 `bson:"lng" json:"lng"`
	Direccion string   `bson:"direccionTexto" json:"direccionTexto"`
}

// Incident is a citizen-submitted report of a municipal problem. Field names
// on the wire keep the original SIGIM document schema, so existing data and
// the web client keep working unchanged.
type Incident struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TicketID    string             `bson:"ticketId" json:"ticketId"`
	Category    Category           `bson:"categoria" json:"categoria"`
	Description string             `bson:"descripcion" json:"descripcion"`
	Location    Location           `bson:"ubicacion" json:"ubicacion"`
	EvidenceURL string             `bson:"fotoEvidenciaURL" json:"fotoEvidenciaURL"`
	Status      Status             `bson:"estado" json:"estado"`
	CreatedAt   time.Time          `bson:"creadoEn" json:"creadoEn"`
	UpdatedAt   time.Time          `bson:"actualizadoEn" json:"actualizadoEn"`

	// Resolution fields, nil until the incident transitions to resuelto.
	// All three are written together in that single update.
	SolutionURL       *string `bson:"fotoSolucionURL" json:"fotoSolucionURL"`
	ResolutionComment *string `bson:"comentarioResolucion" json:"comentarioResolucion"`
	ResolvedBy        *string `bson:"resueltoPor" json:"resueltoPor"`
}

// HasCoordinates reports whether the incident can be placed on a map.
func (i *Incident) HasCoordinates() bool {
	return i.Location.Lat != nil && i.Location.Lng != nil
}
