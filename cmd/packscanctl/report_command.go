// cmd/packscanctl/report_command.go
package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/packscan/packscan-backend/internal/inspection"
	"github.com/packscan/packscan-backend/internal/models"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var status string
	var limit int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the BI summary and rankings",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := inspection.ReportOptions{Limit: limit}
			if status != "" {
				reviewStatus := models.ReviewStatus(status)
				if !reviewStatus.Valid() {
					return fmt.Errorf("unknown status %q", status)
				}
				opts.Status = &reviewStatus
			}

			svc, err := ctx.services()
			if err != nil {
				return err
			}
			actor, err := ctx.admin()
			if err != nil {
				return err
			}

			report, err := svc.Analytics.Report(cmd.Context(), actor, opts)
			if err != nil {
				return err
			}

			writeReport(cmd.OutOrStdout(), report, opts.Status != nil)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Also list the entries in this review status")
	cmd.Flags().IntVar(&limit, "limit", 0, "Ranking size (defaults to the configured size)")
	return cmd
}

func writeReport(w io.Writer, report inspection.Report, withFiltered bool) {
	summary := [][]string{
		{"Entries", strconv.Itoa(report.Total)},
		{"Approved", strconv.Itoa(report.Approved)},
		{"Rejected", strconv.Itoa(report.Rejected)},
		{"Pending", strconv.Itoa(report.Pending)},
		{"New prospects", strconv.Itoa(report.NewProspects)},
		{"Cities", strconv.Itoa(report.Cities)},
		{"Establishments", strconv.Itoa(report.Establishments)},
	}
	fmt.Fprintln(w, renderTable("Summary", []string{"Metric", "Value"}, summary, []columnAlignment{alignLeft, alignRight}))

	rankings := []struct {
		title string
		items []inspection.RankItem
	}{
		{"Establishments", report.EstablishmentRanking},
		{"Cities", report.CityRanking},
		{"Brands", report.BrandRanking},
	}
	for _, ranking := range rankings {
		fmt.Fprintln(w, renderTable(ranking.title, []string{"#", "Name", "Entries"}, rankRows(ranking.items),
			[]columnAlignment{alignRight, alignLeft, alignRight}))
	}

	fmt.Fprintln(w, renderTable("Packaging manufacturers", []string{"Name", "Entries", "Share"}, shareRows(report.ManufacturerShare),
		[]columnAlignment{alignLeft, alignRight, alignRight}))
	fmt.Fprintln(w, renderTable("Molding", []string{"Technique", "Entries", "Share"}, shareRows(report.MoldingDistribution),
		[]columnAlignment{alignLeft, alignRight, alignRight}))

	if withFiltered {
		rows := make([][]string, 0, len(report.Filtered))
		for _, entry := range report.Filtered {
			rows = append(rows, []string{
				entry.Attributes.RazaoSocial,
				entry.Attributes.FirstTaxID(),
				entry.Attributes.Marca,
				string(entry.ReviewStatus),
			})
		}
		fmt.Fprintln(w, renderTable("Entries", []string{"Company", "CNPJ", "Brand", "Status"}, rows, nil))
	}
}

func rankRows(items []inspection.RankItem) [][]string {
	rows := make([][]string, 0, len(items))
	for i, item := range items {
		rows = append(rows, []string{strconv.Itoa(i + 1), item.Key, strconv.Itoa(item.Count)})
	}
	return rows
}

func shareRows(items []inspection.ShareItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item.Key, strconv.Itoa(item.Count), fmt.Sprintf("%.0f%%", item.Percent)})
	}
	return rows
}
