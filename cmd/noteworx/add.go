package main

import (
	"context"
	"fmt"

	"github.com/noteworx/noteworx/internal/note/service"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		title   string
		content string
		tags    []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add new note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd, func(ctx context.Context, svc *service.Service) error {
				id, err := svc.AddNote(ctx, title, content, tags)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Inserted note id : %s\n", id.Hex())
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "A value that describes a note")
	cmd.Flags().StringVarP(&content, "content", "c", "", "The body or content of the note")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Tags that can be used to add metadata to a note (comma separated or repeated)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}
