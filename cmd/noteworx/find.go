package main

import (
	"context"
	"fmt"

	"github.com/noteworx/noteworx/internal/note"
	"github.com/noteworx/noteworx/internal/note/service"
	"github.com/spf13/cobra"
)

func newFindCmd(a *app, output func() string) *cobra.Command {
	var id, title, tag string
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find note",
		Long:  `Find a note by --id, or notes whose title or tags contain --title / --tag (case-insensitive).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" && title == "" && tag == "" {
				return fmt.Errorf("%w: one of --id, --title or --tag is required", note.ErrInvalidArgument)
			}
			return a.withService(cmd, func(ctx context.Context, svc *service.Service) error {
				w := cmd.OutOrStdout()
				switch {
				case id != "":
					n, err := svc.FindNoteByID(ctx, id)
					if err != nil {
						return err
					}
					if n == nil {
						fmt.Fprintf(w, "No note found with id %s\n", id)
						return nil
					}
					return printNote(w, output(), n)
				case title != "":
					notes, err := svc.FindNotesByTitle(ctx, title)
					if err != nil {
						return err
					}
					return printNotes(w, output(), notes)
				default:
					notes, err := svc.FindNotesByTag(ctx, tag)
					if err != nil {
						return err
					}
					return printNotes(w, output(), notes)
				}
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "A value that uniquely identifies a note")
	cmd.Flags().StringVarP(&title, "title", "t", "", "Match notes whose title contains this value")
	cmd.Flags().StringVar(&tag, "tag", "", "Match notes with a tag containing this value")
	return cmd
}
