// internal/models/inspection.go
package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type InspectionList struct {
	BaseModel
	Name          string     `json:"name" gorm:"size:255;not null"`
	Establishment string     `json:"establishment" gorm:"size:255;not null;index"`
	City          string     `json:"city" gorm:"size:120;not null;index"`
	InspectorName string     `json:"inspector_name" gorm:"size:120"`
	InspectorID   uuid.UUID  `json:"inspector_id" gorm:"type:uuid;not null;index"`
	Status        ListStatus `json:"status" gorm:"type:varchar(20);not null;default:'executing';index"`
	IsClosed      bool       `json:"is_closed" gorm:"default:false"`

	// Relationships
	Entries []ProductEntry `json:"entries" gorm:"foreignKey:ListID"`
}

// ExtractedAttributes is the normalized attribute bundle produced by the extraction oracle.
// TaxIDs keeps the order returned by the oracle; the first value is the canonical one.
type ExtractedAttributes struct {
	RazaoSocial         string                      `json:"razao_social" gorm:"size:255"`
	TaxIDs              datatypes.JSONSlice[string] `json:"cnpj" gorm:"column:cnpj"`
	Marca               string                      `json:"marca" gorm:"size:255"`
	DescricaoProduto    string                      `json:"descricao_produto" gorm:"type:text"`
	Conteudo            string                      `json:"conteudo" gorm:"size:120"`
	Endereco            string                      `json:"endereco" gorm:"type:text"`
	CEP                 string                      `json:"cep" gorm:"size:20"`
	Telefone            string                      `json:"telefone" gorm:"size:60"`
	Site                string                      `json:"site" gorm:"size:255"`
	FabricanteEmbalagem string                      `json:"fabricante_embalagem" gorm:"size:255;index"`
	Moldagem            string                      `json:"moldagem" gorm:"size:20"`
	FormatoEmbalagem    string                      `json:"formato_embalagem" gorm:"size:20"`
	TipoEmbalagem       string                      `json:"tipo_embalagem" gorm:"size:120"`
	ModeloEmbalagem     string                      `json:"modelo_embalagem" gorm:"size:120"`
}

// FirstTaxID returns the canonical tax identifier or the N/I sentinel.
func (a ExtractedAttributes) FirstTaxID() string {
	if len(a.TaxIDs) == 0 || a.TaxIDs[0] == "" {
		return NotIdentified
	}
	return a.TaxIDs[0]
}

type ProductEntry struct {
	BaseModel
	ListID        uuid.UUID                   `json:"list_id" gorm:"type:uuid;not null;index"`
	InspectorID   uuid.UUID                   `json:"inspector_id" gorm:"type:uuid;not null;index"`
	Photos        datatypes.JSONSlice[string] `json:"photos"`
	Attributes    ExtractedAttributes         `json:"data" gorm:"embedded"`
	TaxRoot       string                      `json:"cnpj_raiz" gorm:"column:cnpj_raiz;size:8;index"`
	IsNewProspect bool                        `json:"is_new_prospect" gorm:"not null"`
	ReviewStatus  ReviewStatus                `json:"review_status" gorm:"type:varchar(20);not null;default:'pending';index"`
	ICComment     string                      `json:"ic_comment" gorm:"type:text"`
}

// AppSettings is the singleton reference configuration maintained by administrators.
type AppSettings struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	ICEmail        string     `json:"ic_email" gorm:"size:255"`
	ReferenceCNPJs string     `json:"reference_cnpjs" gorm:"type:text"`
	UpdatedBy      *uuid.UUID `json:"updated_by" gorm:"type:uuid"`
	CreatedAt      int64      `json:"-" gorm:"autoCreateTime"`
	UpdatedAt      int64      `json:"updated_at" gorm:"autoUpdateTime"`
}

// SettingsID is the primary key of the AppSettings singleton row.
const SettingsID = 1
