// internal/extraction/decode.go
package extraction

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/packscan/packscan-backend/internal/inspection"
	"github.com/packscan/packscan-backend/internal/models"
)

var codeFence = regexp.MustCompile("```(?:json)?\\n?")

// Decode validates the model output field by field into ExtractedAttributes.
// Nothing from the raw payload is used without coercion.
func Decode(text string) (models.ExtractedAttributes, error) {
	var attrs models.ExtractedAttributes

	clean := strings.TrimSpace(codeFence.ReplaceAllString(text, ""))
	if clean == "" {
		return attrs, fmt.Errorf("empty payload")
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return attrs, fmt.Errorf("decode payload: %w", err)
	}

	attrs = models.ExtractedAttributes{
		RazaoSocial:         scalar(raw["razaoSocial"]),
		TaxIDs:              taxIDs(raw["cnpj"]),
		Marca:               scalar(raw["marca"]),
		DescricaoProduto:    scalar(raw["descricaoProduto"]),
		Conteudo:            scalar(raw["conteudo"]),
		Endereco:            scalar(raw["endereco"]),
		CEP:                 scalar(raw["cep"]),
		Telefone:            scalar(raw["telefone"]),
		Site:                scalar(raw["site"]),
		FabricanteEmbalagem: scalar(raw["fabricanteEmbalagem"]),
		Moldagem:            scalar(raw["moldagem"]),
		FormatoEmbalagem:    scalar(raw["formatoEmbalagem"]),
		TipoEmbalagem:       scalar(raw["tipoEmbalagem"]),
		ModeloEmbalagem:     scalar(raw["modeloEmbalagem"]),
	}
	return inspection.NormalizeAttributes(attrs), nil
}

// scalar renders a JSON value as text; objects and arrays are not attribute values.
func scalar(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// taxIDs keeps every array position, unreadable ones included, since the first element is
// canonical. A lone unidentified scalar means no identifier at all.
func taxIDs(v interface{}) []string {
	switch val := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, scalar(item))
		}
		return out
	default:
		if s := scalar(val); inspection.Sanitize(s) != models.NotIdentified {
			return []string{s}
		}
		return nil
	}
}
