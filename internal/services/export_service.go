// internal/services/export_service.go
package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jszwec/csvutil"

	"github.com/packscan/packscan-backend/internal/models"
	"github.com/packscan/packscan-backend/internal/repository"
)

const (
	exportDateLayout  = "02/01/2006 15:04:05"
	statusNewProspect = "Novo Prospect"
	statusRegistered  = "Já Cadastrado"
)

// ExportRow is one entry of the master database sheet. Column order is part of the
// contract with the spreadsheets downstream.
type ExportRow struct {
	DataLeitura         string `csv:"DATA_LEITURA"`
	Inspetor            string `csv:"INSPETOR"`
	PDV                 string `csv:"PDV"`
	Cidade              string `csv:"CIDADE"`
	EstadoUF            string `csv:"ESTADO_UF"`
	RazaoSocial         string `csv:"RAZAO_SOCIAL"`
	Marca               string `csv:"MARCA"`
	Descricao           string `csv:"DESCRICAO"`
	Conteudo            string `csv:"CONTEUDO"`
	CNPJ                string `csv:"CNPJ"`
	StatusBase          string `csv:"STATUS_BASE"`
	FabricanteEmbalagem string `csv:"FABRICANTE_EMBALAGEM"`
	Moldagem            string `csv:"MOLDAGEM"`
	Formato             string `csv:"FORMATO"`
	TipoEmbalagem       string `csv:"TIPO_EMBALAGEM"`
	ModeloEmbalagem     string `csv:"MODELO_EMBALAGEM"`
	Endereco            string `csv:"ENDERECO"`
	CEP                 string `csv:"CEP"`
	Telefone            string `csv:"TELEFONE"`
	Site                string `csv:"SITE"`
	StatusIC            string `csv:"STATUS_IC"`
	ObservacaoIC        string `csv:"OBSERVACAO_IC"`
}

type ExportService struct {
	repo repository.Repository
}

func NewExportService(repo repository.Repository) *ExportService {
	return &ExportService{repo: repo}
}

// FileName is the download name of an export taken at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("PackScan_Master_Database_%s.csv", now.Format("2006-01-02"))
}

func (s *ExportService) Rows(ctx context.Context, actor Actor) ([]ExportRow, error) {
	lists, err := s.repo.ListLists(ctx, repository.ListScope{InspectorID: actor.scope()})
	if err != nil {
		return nil, err
	}
	return BuildRows(lists), nil
}

// WriteCSV streams the visible entries as CSV with a UTF-8 BOM so spreadsheet tools pick
// the right encoding.
func (s *ExportService) WriteCSV(ctx context.Context, actor Actor, w io.Writer) error {
	rows, err := s.Rows(ctx, actor)
	if err != nil {
		return err
	}
	return EncodeRows(w, rows)
}

func EncodeRows(w io.Writer, rows []ExportRow) error {
	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	writer := csv.NewWriter(w)
	enc := csvutil.NewEncoder(writer)
	if len(rows) == 0 {
		if err := enc.EncodeHeader(ExportRow{}); err != nil {
			return fmt.Errorf("failed to encode export header: %w", err)
		}
	} else if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode export rows: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// BuildRows flattens lists into rows, lists in the given order and entries in list order.
func BuildRows(lists []models.InspectionList) []ExportRow {
	rows := []ExportRow{}
	for _, list := range lists {
		for _, entry := range list.Entries {
			a := entry.Attributes
			rows = append(rows, ExportRow{
				DataLeitura:         entry.CreatedAt.Format(exportDateLayout),
				Inspetor:            list.InspectorName,
				PDV:                 list.Establishment,
				Cidade:              list.City,
				EstadoUF:            stateOf(list.City),
				RazaoSocial:         a.RazaoSocial,
				Marca:               a.Marca,
				Descricao:           a.DescricaoProduto,
				Conteudo:            a.Conteudo,
				CNPJ:                a.FirstTaxID(),
				StatusBase:          baseStatus(entry.IsNewProspect),
				FabricanteEmbalagem: a.FabricanteEmbalagem,
				Moldagem:            a.Moldagem,
				Formato:             a.FormatoEmbalagem,
				TipoEmbalagem:       a.TipoEmbalagem,
				ModeloEmbalagem:     a.ModeloEmbalagem,
				Endereco:            a.Endereco,
				CEP:                 a.CEP,
				Telefone:            a.Telefone,
				Site:                a.Site,
				StatusIC:            string(entry.ReviewStatus),
				ObservacaoIC:        entry.ICComment,
			})
		}
	}
	return rows
}

// stateOf reads the UF from a "CITY / UF" label.
func stateOf(city string) string {
	parts := strings.Split(city, "/")
	if state := strings.TrimSpace(parts[len(parts)-1]); state != "" {
		return state
	}
	return models.NotIdentified
}

func baseStatus(isNew bool) string {
	if isNew {
		return statusNewProspect
	}
	return statusRegistered
}
