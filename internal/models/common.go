// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotIdentified is the sentinel stored in any attribute the extraction could not determine.
const NotIdentified = "N/I"

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns the id client-side so the models work on any gorm dialect.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// JSONB type for audit payloads
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleInspector UserRole = "inspector"
)

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

type ListStatus string

const (
	ListStatusExecuting ListStatus = "executing"
	ListStatusWaitingIC ListStatus = "waiting_ic"
	ListStatusApproved  ListStatus = "approved"
	ListStatusPartial   ListStatus = "partial"
	ListStatusRejected  ListStatus = "rejected"
)

// ReviewStatus gates whether an entry feeds BI reporting.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// ReviewStatuses lists every review state in reporting order.
var ReviewStatuses = []ReviewStatus{ReviewStatusApproved, ReviewStatusRejected, ReviewStatusPending}

func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected:
		return true
	}
	return false
}

// Molding techniques accepted by the attribute normalizer.
const (
	MoldingInjected    = "INJETADO"
	MoldingThermoform  = "TERMOFORMADO"
	ShapeRound         = "REDONDO"
	ShapeSquare        = "QUADRADO"
	ShapeRectangular   = "RETANGULAR"
	ShapeOval          = "OVAL"
	DefaultPackageType = "POTE"
)
