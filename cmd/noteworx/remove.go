package main

import (
	"context"
	"fmt"

	"github.com/noteworx/noteworx/internal/note/service"
	"github.com/spf13/cobra"
)

func newRemoveCmd(a *app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd, func(ctx context.Context, svc *service.Service) error {
				if err := svc.RemoveNote(ctx, id); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Note Removed")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "A value that uniquely identifies a note")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
