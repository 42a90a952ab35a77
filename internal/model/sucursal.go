package model

import (
	"time"

	"github.com/google/uuid"
)

// Sucursal is an independently stocked sales location. The set is open:
// adding a row here is all it takes to operate a new branch.
type Sucursal struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Activa    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Sucursal) TableName() string { return "sucursales" }
