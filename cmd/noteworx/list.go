package main

import (
	"context"
	"fmt"

	"github.com/noteworx/noteworx/internal/note/service"
	"github.com/spf13/cobra"
)

func newListCmd(a *app, output func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd, func(ctx context.Context, svc *service.Service) error {
				notes, err := svc.ListNotes(ctx)
				if err != nil {
					return err
				}
				if len(notes) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "There are currently no notes to display")
					return nil
				}
				return printNotes(cmd.OutOrStdout(), output(), notes)
			})
		},
	}
}
