package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCmdPreferences() *cobra.Command {
	c := &cobra.Command{
		Use:                "preferences",
		Aliases:            []string{"prefs"},
		Short:              "Platform preferences",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	c.AddCommand(&cobra.Command{
		Use:                "show",
		Short:              "Show platform preferences",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildWorkspaceUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			return uc.ShowPreferences(ctx)
		},
	})
	return c
}

func newCmdLogout() *cobra.Command {
	return &cobra.Command{
		Use:                "logout",
		Short:              "End the platform session and clear local state",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			uc, err := buildWorkspaceUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "session.logout", uc.Username)
			defer func() { cleanup(err) }()

			if err := uc.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}
