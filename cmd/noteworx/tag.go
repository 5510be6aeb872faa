package main

import (
	"context"
	"fmt"

	"github.com/noteworx/noteworx/internal/note/service"
	"github.com/spf13/cobra"
)

func newTagCmd(a *app) *cobra.Command {
	var (
		id   string
		tags []string
	)
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Tag an existing note",
		Long:  `Add tags to a note. Tags the note already has are not repeated.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd, func(ctx context.Context, svc *service.Service) error {
				if err := svc.TagNote(ctx, id, tags); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Tagged ...")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "A value that uniquely identifies a note")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Tags to add (comma separated or repeated)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("tags")
	return cmd
}
