package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"Share_Space/internal/bootstrap"
	"Share_Space/internal/model"
)

func pendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List items waiting for review",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				q := app.Space.PendingQueue()
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "KIND\tID\tAUTHOR\tTITLE")
				for _, p := range q.Posts {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", model.KindPost, p.ID, p.AuthorUID, p.Title)
				}
				for _, m := range q.Media {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", model.KindMedia, m.ID, m.AuthorUID, m.Title)
				}
				for _, a := range q.Gallery {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", model.KindGallery, a.ID, a.AuthorUID, a.Title)
				}
				return w.Flush()
			})
		},
	}
}

func approveCmd() *cobra.Command {
	return reviewCmd("approve", "Publish a pending item", func(ctx context.Context, app *bootstrap.App, actor *model.User, kind model.ContentKind, id string) (bool, error) {
		return app.Review.Approve(ctx, actor, kind, id)
	})
}

func rejectCmd() *cobra.Command {
	return reviewCmd("reject", "Reject (delete) an item", func(ctx context.Context, app *bootstrap.App, actor *model.User, kind model.ContentKind, id string) (bool, error) {
		return app.Review.Reject(ctx, actor, kind, id)
	})
}

type reviewFunc func(ctx context.Context, app *bootstrap.App, actor *model.User, kind model.ContentKind, id string) (bool, error)

func reviewCmd(use, short string, run reviewFunc) *cobra.Command {
	var as string
	cmd := &cobra.Command{
		Use:   use + " <post|media|gallery> <id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				actor, err := app.Actor(as)
				if err != nil {
					return err
				}
				changed, err := run(cmd.Context(), app, actor, model.ContentKind(args[0]), args[1])
				if err != nil {
					return err
				}
				if !changed {
					fmt.Println("nothing to do")
					return nil
				}
				fmt.Printf("%s %s %s\n", use, args[0], args[1])
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&as, "as", "", "uid of the acting admin")
	_ = cmd.MarkFlagRequired("as")
	return cmd
}

func banCmd() *cobra.Command {
	var (
		as   string
		days int
	)
	cmd := &cobra.Command{
		Use:   "ban <uid>",
		Short: "Ban a user for N days (0 lifts the ban)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				actor, err := app.Actor(as)
				if err != nil {
					return err
				}
				if err = app.Users.Ban(cmd.Context(), actor, args[0], days); err != nil {
					return err
				}
				fmt.Printf("ban for %s set to %d day(s)\n", args[0], days)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&as, "as", "", "uid of the acting admin")
	cmd.Flags().IntVar(&days, "days", 0, "ban length in days")
	_ = cmd.MarkFlagRequired("as")
	return cmd
}

func withApp(ctx context.Context, fn func(app *bootstrap.App) error) error {
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()
	defer app.Log.Sync() //nolint:errcheck
	return fn(app)
}
