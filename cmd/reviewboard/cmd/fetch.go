package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/nfrund/reviewboard/internal/domain"
	"github.com/nfrund/reviewboard/internal/reviews"
	"github.com/nfrund/reviewboard/internal/server"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the review collection once and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		client, err := server.NewReviewClient(cfg, version)
		if err != nil {
			return err
		}
		return runFetch(cmd.Context(), cmd.OutOrStdout(), client, cfg.Location(), asJSON)
	},
}

func init() {
	fetchCmd.Flags().Bool("json", false, "print the raw collection as JSON")
	rootCmd.AddCommand(fetchCmd)
}

// runFetch performs one fetch through the view model and prints what a view
// would show.
func runFetch(ctx context.Context, w io.Writer, fetcher reviews.Fetcher, loc *time.Location, asJSON bool) error {
	state := reviews.Initial()
	list, err := fetcher.FetchReviews(ctx)
	if err != nil {
		state = state.Fail()
	} else {
		state = state.Succeed(list)
	}

	switch state.Phase() {
	case reviews.PhaseError:
		return fmt.Errorf("%s: %w", state.Err, err)
	case reviews.PhaseEmpty:
		if asJSON {
			_, err := fmt.Fprintln(w, "[]")
			return err
		}
		_, err := fmt.Fprintf(w, "%s\n%s\n", reviews.EmptyHeading, reviews.EmptyHint)
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(state.Reviews)
	}
	return printReviews(w, state.Reviews, loc)
}

func printReviews(w io.Writer, list []domain.Review, loc *time.Location) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSER NAME\tPRODUCT\tREVIEW\tTIMESTAMP\tCONTACT")
	for _, r := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.UserName, r.ProductName, r.ProductReview,
			reviews.FormatTimestamp(r.CreatedAt, loc), r.ContactNumber)
	}
	return tw.Flush()
}
