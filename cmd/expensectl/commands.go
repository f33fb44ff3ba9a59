package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/expenses/internal/service"
)

// cli holds the persistent flags shared by every command.
type cli struct {
	addr  string
	token string
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "expensectl",
		Short:         "A cli for the expenses server",
		SilenceUsage:  true,
	}
	rootCmd.PersistentFlags().StringVar(&c.addr, "addr", getEnv("EXPENSES_ADDR", "http://localhost:8080"), "server base URL")
	rootCmd.PersistentFlags().StringVar(&c.token, "token", os.Getenv("EXPENSES_TOKEN"), "bearer token from login")

	currencyCmd := &cobra.Command{Use: "currency", Short: "Manage currencies"}
	currencyCmd.AddCommand(newCurrencyAddCmd(c))

	personCmd := &cobra.Command{Use: "person", Short: "Manage persons"}
	personCmd.AddCommand(newPersonAddCmd(c))

	reportCmd := &cobra.Command{Use: "report", Short: "Manage expense reports"}
	reportCmd.AddCommand(newReportAddCmd(c), newReportTransitionCmd(c), newReportTotalsCmd(c))

	itemCmd := &cobra.Command{Use: "item", Short: "Manage line items"}
	itemCmd.AddCommand(newItemAddCmd(c))

	findCmd := &cobra.Command{Use: "find", Short: "Query the secondary indices"}
	findCmd.AddCommand(newFindLoginCmd(c), newFindReportsCmd(c))

	rootCmd.AddCommand(
		currencyCmd,
		personCmd,
		reportCmd,
		itemCmd,
		findCmd,
		newGetCmd(c),
		newListCmd(c),
		newHistoryCmd(c),
		newRegisterCmd(c),
		newLoginCmd(c),
	)
	return rootCmd
}

func (c *cli) expenses() *service.ExpenseServiceClient {
	return service.NewExpenseServiceClient(http.DefaultClient, c.addr)
}

func (c *cli) auth() *service.AuthServiceClient {
	return service.NewAuthServiceClient(http.DefaultClient, c.addr)
}

// request wraps msg, attaching the bearer token when one is set.
func request[T any](c *cli, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	if c.token != "" {
		req.Header().Set("Authorization", "Bearer "+c.token)
	}
	return req
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not an entity id", s)
	}
	return id, nil
}

// optionalID returns nil for the zero flag value.
func optionalID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// parseTime accepts RFC 3339; an empty string means now.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC().Truncate(time.Second), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not an RFC 3339 time", s)
	}
	return t, nil
}

func (c *cli) write(cmd *cobra.Command, rec *service.Record) error {
	resp, err := c.expenses().Write(cmd.Context(), request(c, &service.WriteRequest{Record: rec}))
	if err != nil {
		return err
	}
	return printJSON(cmd, resp.Msg.Record)
}
