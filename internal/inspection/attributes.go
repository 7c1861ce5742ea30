// internal/inspection/attributes.go
package inspection

import (
	"strings"

	"github.com/packscan/packscan-backend/internal/models"
)

// Sanitize maps empty values and any casing of the sentinel to N/I.
func Sanitize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, models.NotIdentified) {
		return models.NotIdentified
	}
	return value
}

// NormalizeShape uppercases the shape and folds any cylindrical description into REDONDO.
func NormalizeShape(value string) string {
	shape := strings.ToUpper(Sanitize(value))
	if strings.Contains(shape, "CILIN") || strings.Contains(shape, "CILÍN") {
		return models.ShapeRound
	}
	return shape
}

// NormalizeMolding maps free text onto the two molding techniques. Anything that is
// neither identified nor recognizable is assumed thermoformed.
func NormalizeMolding(value string) string {
	molding := strings.ToUpper(Sanitize(value))
	switch {
	case molding == models.NotIdentified:
		return models.NotIdentified
	case strings.Contains(molding, "INJE"):
		return models.MoldingInjected
	case strings.Contains(molding, "TERMO"):
		return models.MoldingThermoform
	default:
		return models.MoldingThermoform
	}
}

// NormalizeTaxIDs trims and uppercases identifiers in place. Unidentified positions stay as
// N/I: the first element is the canonical one, so an unreadable leading identifier must
// not be replaced by the next.
func NormalizeTaxIDs(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, upper(v))
	}
	return out
}

func upper(value string) string {
	return strings.ToUpper(Sanitize(value))
}

// lower keeps the N/I sentinel in its canonical casing.
func lower(value string) string {
	value = Sanitize(value)
	if value == models.NotIdentified {
		return value
	}
	return strings.ToLower(value)
}

// NormalizeAttributes applies the storage casing and coercion rules. It is idempotent and
// runs on every write path, extraction and manual edit alike.
func NormalizeAttributes(a models.ExtractedAttributes) models.ExtractedAttributes {
	packageType := a.TipoEmbalagem
	if strings.TrimSpace(packageType) == "" {
		packageType = models.DefaultPackageType
	}

	return models.ExtractedAttributes{
		RazaoSocial:         upper(a.RazaoSocial),
		TaxIDs:              NormalizeTaxIDs(a.TaxIDs),
		Marca:               upper(a.Marca),
		DescricaoProduto:    upper(a.DescricaoProduto),
		Conteudo:            upper(a.Conteudo),
		Endereco:            upper(a.Endereco),
		CEP:                 upper(a.CEP),
		Telefone:            upper(a.Telefone),
		Site:                lower(a.Site),
		FabricanteEmbalagem: upper(a.FabricanteEmbalagem),
		Moldagem:            NormalizeMolding(a.Moldagem),
		FormatoEmbalagem:    NormalizeShape(a.FormatoEmbalagem),
		TipoEmbalagem:       upper(packageType),
		ModeloEmbalagem:     upper(a.ModeloEmbalagem),
	}
}

// HasUsableData reports whether anything beyond defaults was identified.
// The package type is excluded since it falls back to POTE.
func HasUsableData(a models.ExtractedAttributes) bool {
	for _, id := range a.TaxIDs {
		if Sanitize(id) != models.NotIdentified {
			return true
		}
	}
	for _, v := range []string{
		a.RazaoSocial, a.Marca, a.DescricaoProduto, a.Conteudo, a.Endereco, a.CEP,
		a.Telefone, a.Site, a.FabricanteEmbalagem, a.Moldagem, a.FormatoEmbalagem, a.ModeloEmbalagem,
	} {
		if Sanitize(v) != models.NotIdentified {
			return true
		}
	}
	return false
}
