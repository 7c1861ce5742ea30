// internal/extraction/prompt.go
package extraction

const systemInstruction = "Retorne estritamente um JSON. Padronize Moldagem para INJETADO/TERMOFORMADO e " +
	"Formato para REDONDO/QUADRADO/RETANGULAR/OVAL. Nunca use 'CILÍNDRICO'. Use 'N/I' para dados ausentes."

const technicalPrompt = `VOCÊ É UM ANALISTA TÉCNICO DE EMBALAGENS PLÁSTICAS.
Sua missão é extrair dados precisos destas fotos.

IMPORTANTE: Se você conseguir extrair informação de apenas uma imagem e não das demais, NÃO FALHE.
Forneça todos os dados que conseguir encontrar. Use "N/I" (Não Identificado) para campos impossíveis de determinar.

INSTRUÇÃO TÉCNICA DE MOLDAGEM:
Analise o fundo da embalagem.
- O que difere TERMOFORMADO de INJETADO é o PONTO DE INJEÇÃO.
- INJETADO: possui obrigatoriamente um ponto central (pequena marca circular ou cicatriz) de onde o plástico fluiu.
- TERMOFORMADO: o fundo é liso, sem marcas centrais, podendo conter apenas marcas de vácuo nas bordas.

DADOS A EXTRAIR:
- Razão Social (fabricante do produto), CNPJ (todos), Marca, Descrição, Conteúdo (peso/vol).
- Fabricante da Embalagem, Moldagem (INJETADO ou TERMOFORMADO), Formato (REDONDO/QUADRADO/RETANGULAR/OVAL), Tipo e Modelo.`

// responseSchema constrains generateContent to the attribute bundle.
var responseSchema = map[string]interface{}{
	"type": "OBJECT",
	"properties": map[string]interface{}{
		"razaoSocial":         stringSchema(""),
		"cnpj":                map[string]interface{}{"type": "ARRAY", "items": stringSchema("")},
		"marca":               stringSchema(""),
		"descricaoProduto":    stringSchema(""),
		"conteudo":            stringSchema(""),
		"endereco":            stringSchema(""),
		"cep":                 stringSchema(""),
		"telefone":            stringSchema(""),
		"site":                stringSchema(""),
		"fabricanteEmbalagem": stringSchema(""),
		"moldagem":            stringSchema("INJETADO se houver ponto central, TERMOFORMADO se liso"),
		"formatoEmbalagem":    stringSchema(""),
		"tipoEmbalagem":       stringSchema(""),
		"modeloEmbalagem":     stringSchema(""),
	},
}

func stringSchema(description string) map[string]interface{} {
	s := map[string]interface{}{"type": "STRING"}
	if description != "" {
		s["description"] = description
	}
	return s
}
