package main

import (
	"context"
	"fmt"

	"github.com/noteworx/noteworx/internal/note/service"
	"github.com/spf13/cobra"
)

func newUpdateCmd(a *app) *cobra.Command {
	var (
		id      string
		title   string
		content string
		tags    []string
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update existing note",
		Long:  `Replace the title, content and tags of a note. Omitting --tags clears them.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd, func(ctx context.Context, svc *service.Service) error {
				if err := svc.UpdateNote(ctx, id, title, content, tags); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Updated ...")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "A value that uniquely identifies a note")
	cmd.Flags().StringVarP(&title, "title", "t", "", "A value that describes a note")
	cmd.Flags().StringVarP(&content, "content", "c", "", "The body or content of the note")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Tags that replace the current ones")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}
