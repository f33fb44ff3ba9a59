package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mmynk/expenses/internal/models"
	"github.com/mmynk/expenses/internal/service"
	"github.com/mmynk/expenses/internal/storage"
)

func newGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show any record by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := c.expenses().Lookup(cmd.Context(), request(c, &service.LookupRequest{ID: id}))
			if err != nil {
				return err
			}
			return printJSON(cmd, resp.Msg.Record)
		},
	}
}

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:       "list [kind]",
		Short:     "List every record of a kind",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"currency", "person", "report", "line_item"},
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.expenses().List(cmd.Context(), request(c, &service.ListRequest{Kind: models.Kind(args[0])}))
			if err != nil {
				return err
			}
			return printJSON(cmd, resp.Msg.Records)
		},
	}
}

func (c *cli) find(cmd *cobra.Command, index storage.Index, key string) error {
	resp, err := c.expenses().FindByKey(cmd.Context(), request(c, &service.FindByKeyRequest{
		Index: string(index),
		Key:   key,
	}))
	if err != nil {
		return err
	}
	return printJSON(cmd, resp.Msg.Records)
}

func newFindLoginCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "login [login]",
		Short: "Find the person with a login",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.find(cmd, storage.IndexPersonByLogin, args[0])
		},
	}
}

func newFindReportsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "reports [person-id]",
		Short: "Find the reports a person filed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.find(cmd, storage.IndexReportsByReporter, strconv.FormatInt(id, 10))
		},
	}
}

func newReportTransitionCmd(c *cli) *cobra.Command {
	var approver, version int64
	cmd := &cobra.Command{
		Use:       "transition [report-id] [status]",
		Short:     "Move a report to a new status",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"draft", "submitted", "approved", "declined", "paid"},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			req := &service.TransitionReportRequest{
				ReportID:   id,
				Status:     args[1],
				ApproverID: optionalID(approver),
			}
			if cmd.Flags().Changed("version") {
				req.Version = &version
			}
			resp, err := c.expenses().TransitionReport(cmd.Context(), request(c, req))
			if err != nil {
				return err
			}
			return printJSON(cmd, resp.Msg.Record)
		},
	}
	cmd.Flags().Int64Var(&approver, "approver", 0, "approving person id (default: the logged-in person)")
	cmd.Flags().Int64Var(&version, "version", 0, "expected report version")
	return cmd
}

func newReportTotalsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "totals [report-id]",
		Short: "Sum a report's line items per currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := c.expenses().ReportTotals(cmd.Context(), request(c, &service.ReportTotalsRequest{ReportID: id}))
			if err != nil {
				return err
			}
			return printJSON(cmd, resp.Msg.Totals)
		},
	}
}

func newHistoryCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "history [id]",
		Short: "Show every accepted write of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := c.expenses().History(cmd.Context(), request(c, &service.HistoryRequest{EntityID: id}))
			if err != nil {
				return err
			}
			return printJSON(cmd, resp.Msg.Entries)
		},
	}
}
