package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	domain "github.com/bryanwahyu/esg-responder/internal/domain/readiness"
)

// NewReadinessCommand creates the readiness command.
func NewReadinessCommand(rootOpts *RootOptions) *cobra.Command {
	var requestID string
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Show the readiness dashboard, or one customer request with --request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()
			out := newFormatter(rootOpts, cmd.OutOrStdout())

			if requestID != "" {
				rr, err := s.Readiness.RequestReadiness(cmd.Context(), requestID)
				if err != nil {
					return WrapExitError(ExitFailure, "request readiness", err)
				}
				return out.Success(rr, func(w io.Writer) { renderRequest(w, rr) })
			}

			d, err := s.Readiness.Dashboard(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, "dashboard", err)
			}
			return out.Success(d, func(w io.Writer) {
				c := d.Confidence.Overall
				fmt.Fprintf(w, "Data points:   %d tracked, %d safe to share (%d%%), %d complete (%d%%)\n",
					c.Total, c.SafeToShare, c.SafePercent, c.Complete, c.CompletePercent)
				fmt.Fprintf(w, "Confidence:    high %d, medium %d, low %d, none %d\n", c.High, c.Medium, c.Low, c.None)
				p := d.Policies
				fmt.Fprintf(w, "Policies:      %d/%d in place (%d%%), %d/%d high priority done\n",
					p.Exists, p.Total, p.CompletionPercent, p.HighPriorityComplete, p.HighPriorityTotal)
				doc := d.Documents
				fmt.Fprintf(w, "Documents:     %d total, %d expired, %d expiring soon\n", doc.Total, doc.Expired, doc.ExpiringSoon)
				fmt.Fprintf(w, "Action items:  %s\n", counts(d.ActionItems))
				fmt.Fprintf(w, "Requests:      %s\n", counts(d.Requests))
			})
		},
	}
	cmd.Flags().StringVar(&requestID, "request", "", "customer request id")
	return cmd
}

func renderRequest(w io.Writer, rr domain.RequestReadiness) {
	fmt.Fprintf(w, "%d%% ready (%d data points)\n", rr.PercentReady, rr.Total)
	section := func(title string, states []domain.DataPointState) {
		fmt.Fprintf(w, "%s (%d)\n", title, len(states))
		for _, s := range states {
			fmt.Fprintf(w, "  - %s [%s/%s]\n", s.Label, s.Status, s.Confidence)
		}
	}
	section("Ready", rr.Ready)
	section("Needs attention", rr.NeedsAttention)
	section("Not tracked", rr.NotTracked)
	if len(rr.UnknownTopics) > 0 {
		fmt.Fprintf(w, "Unknown topics: %v\n", rr.UnknownTopics)
	}
}

func counts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s %d", k, m[k])
	}
	return out
}
