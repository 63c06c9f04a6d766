package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-sitegen/internal/store/sqlite"
)

func submissionsCmd(flags *globalFlags) *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "submissions",
		Short: "List contact submissions stored by the local endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFor(cmd, flags)
			if err != nil {
				return err
			}
			store, err := sqlite.Open(a.databasePath())
			if err != nil {
				return err
			}
			defer store.Close()

			subs, err := store.ListSubmissions(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(subs) == 0 {
				a.styles.warn(a.stdout, "no submissions in %s", store.Path())
				return nil
			}
			for _, sub := range subs {
				fmt.Fprintf(a.stdout, "%s %s\n",
					a.styles.Label.Render(sub.Name),
					a.styles.Muted.Render(sub.SubmittedAt.Local().Format(time.DateTime)))
				a.styles.field(a.stdout, "phone", sub.Phone)
				a.styles.field(a.stdout, "itinerary", sub.Itinerary)
				if sub.Notes != "" {
					a.styles.field(a.stdout, "notes", sub.Notes)
				}
				a.styles.field(a.stdout, "id", sub.ID)
			}
			return nil
		},
	}

	c.Flags().IntVarP(&limit, "limit", "n", 20, "maximum submissions to list")
	return c
}
