package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/esg-responder/internal/domain/emissions"
)

// NewSeedPoliciesCommand creates the seed-policies command.
func NewSeedPoliciesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-policies",
		Short: "Add the default policy list when no policies exist yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.Policies.Seed(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, "seed policies", err)
			}
			return newFormatter(rootOpts, cmd.OutOrStdout()).Success(map[string]int{"seeded": n}, func(w io.Writer) {
				if n == 0 {
					fmt.Fprintln(w, "policies already present, nothing seeded")
					return
				}
				fmt.Fprintf(w, "seeded %d policies\n", n)
			})
		},
	}
}

// NewEmissionsCommand creates the emissions command.
func NewEmissionsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "emissions <factor=quantity>...",
		Short: "Calculate CO2e from activity data, e.g. grid_electricity_kwh=12000",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activities, err := parseActivities(args)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid activity", err)
			}
			s, err := openSession(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			res := s.Catalog.Factors.Calculate(activities)
			return newFormatter(rootOpts, cmd.OutOrStdout()).Success(res, func(w io.Writer) {
				for _, l := range res.Lines {
					fmt.Fprintf(w, "%-32s %12.2f %-8s scope %d %12.3f kg\n", l.FactorKey, l.Quantity, l.Unit, l.Scope, l.KgCO2e)
				}
				fmt.Fprintf(w, "Scope 1: %.3f kg  Scope 2: %.3f kg  Scope 3: %.3f kg\n", res.Scope1Kg, res.Scope2Kg, res.Scope3Kg)
				fmt.Fprintf(w, "Total:   %.3f t CO2e\n", res.TotalTonnes)
				for _, u := range res.Unknown {
					fmt.Fprintf(w, "unknown factor: %s\n", u)
				}
			})
		},
	}
}

func parseActivities(args []string) ([]emissions.Activity, error) {
	out := make([]emissions.Activity, 0, len(args))
	for _, a := range args {
		key, qty, ok := strings.Cut(a, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%q: want factor=quantity", a)
		}
		v, err := strconv.ParseFloat(qty, 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", a, err)
		}
		out = append(out, emissions.Activity{FactorKey: key, Quantity: v})
	}
	return out, nil
}
