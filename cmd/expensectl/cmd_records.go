package main

import (
	"github.com/spf13/cobra"

	"github.com/mmynk/expenses/internal/models"
	"github.com/mmynk/expenses/internal/service"
)

func newCurrencyAddCmd(c *cli) *cobra.Command {
	var code, name string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a currency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := &service.Record{Kind: models.KindCurrency, Code: &code}
			if name != "" {
				rec.Name = &name
			}
			return c.write(cmd, rec)
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "currency code, e.g. USD")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

func newPersonAddCmd(c *cli) *cobra.Command {
	var login, name string
	var supervisor int64
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a person",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := &service.Record{
				Kind:         models.KindPerson,
				UserName:     &login,
				SupervisorID: optionalID(supervisor),
			}
			if name != "" {
				rec.DisplayName = &name
			}
			return c.write(cmd, rec)
		},
	}
	cmd.Flags().StringVar(&login, "login", "", "login name")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().Int64Var(&supervisor, "supervisor", 0, "supervisor person id")
	_ = cmd.MarkFlagRequired("login")
	return cmd
}

func newReportAddCmd(c *cli) *cobra.Command {
	var purpose, created string
	var reporter int64
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Open a draft expense report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseTime(created)
			if err != nil {
				return err
			}
			return c.write(cmd, &service.Record{
				Kind:       models.KindReport,
				Created:    &at,
				Purpose:    &purpose,
				ReporterID: optionalID(reporter),
			})
		},
	}
	cmd.Flags().StringVar(&purpose, "purpose", "", "what the expenses were for")
	cmd.Flags().StringVar(&created, "created", "", "creation time, RFC 3339 (default now)")
	cmd.Flags().Int64Var(&reporter, "reporter", 0, "reporter person id")
	_ = cmd.MarkFlagRequired("purpose")
	return cmd
}

func newItemAddCmd(c *cli) *cobra.Command {
	var purpose, incurred string
	var report, currency int64
	var amount float64
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a line item to a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseTime(incurred)
			if err != nil {
				return err
			}
			rec := &service.Record{
				Kind:       models.KindLineItem,
				Amount:     &amount,
				CurrencyID: optionalID(currency),
				Incurred:   &at,
				ReportID:   optionalID(report),
			}
			if purpose != "" {
				rec.Purpose = &purpose
			}
			return c.write(cmd, rec)
		},
	}
	cmd.Flags().Int64Var(&report, "report", 0, "report id")
	cmd.Flags().Int64Var(&currency, "currency", 0, "currency id")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount in the item's currency")
	cmd.Flags().StringVar(&purpose, "purpose", "", "what the expense was for")
	cmd.Flags().StringVar(&incurred, "incurred", "", "when the expense happened, RFC 3339 (default now)")
	_ = cmd.MarkFlagRequired("report")
	_ = cmd.MarkFlagRequired("currency")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
