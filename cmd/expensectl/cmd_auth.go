package main

import (
	"fmt"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/expenses/internal/service"
)

func newRegisterCmd(c *cli) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "register [login]",
		Short: "Set a password for an existing person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.auth().Register(cmd.Context(), connect.NewRequest(&service.RegisterRequest{
				Login:    args[0],
				Password: password,
			}))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Msg.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password, at least 8 characters")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd(c *cli) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login [login]",
		Short: "Print a bearer token; export it as EXPENSES_TOKEN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.auth().Login(cmd.Context(), connect.NewRequest(&service.LoginRequest{
				Login:    args[0],
				Password: password,
			}))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Msg.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
