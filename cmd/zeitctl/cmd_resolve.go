package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
	"github.com/heartmarshall/zeitdreher-backend/internal/service/resolver"
)

var fragment domain.ParsedFragment

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve category names against the user's tree without saving anything",
	RunE:  runResolve,
}

func init() {
	f := resolveCmd.Flags()
	f.StringVar(&fragment.Area, "area", "", "area name")
	f.StringVar(&fragment.Field, "field", "", "field name")
	f.StringVar(&fragment.Activity, "activity", "", "activity name")
}

func runResolve(cmd *cobra.Command, _ []string) error {
	ctx, err := userContext(cmd.Context())
	if err != nil {
		return err
	}
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	out, err := e.resolver.Resolve(ctx, resolver.ResolveInput{Fragment: fragment})
	if err != nil {
		return err
	}
	printOutcome(cmd.OutOrStdout(), out)
	return nil
}

func printOutcome(w io.Writer, out *domain.Outcome) {
	fmt.Fprintln(w, out.Kind)
	switch out.Kind {
	case domain.OutcomeResolved:
		for _, m := range out.Matches {
			fmt.Fprintf(w, "  %-8s %s  %s %.2f\n", m.Level, m.Name, m.Type, m.Confidence)
		}
	case domain.OutcomeNeedsConfirmation:
		fmt.Fprintf(w, "  %q -> %s %s (%s %.2f)\n",
			out.Input, out.Match.Level, out.Match.Name, out.Match.Type, out.Match.Confidence)
		if out.Candidate != nil {
			fmt.Fprintf(w, "  path: %s / %s / %s\n",
				out.Candidate.Area.Name, out.Candidate.Field.Name, out.Candidate.Activity.Name)
		}
	case domain.OutcomeNoMatch:
		if s := out.Suggestion; s != nil {
			fmt.Fprintf(w, "  create %q", s.ActivityName)
			if s.Field != nil {
				fmt.Fprintf(w, " under %s", s.Field.Name)
			}
			fmt.Fprintln(w)
		}
	}
	for _, lv := range out.Unmatched {
		fmt.Fprintf(w, "  unmatched: %s\n", lv)
	}
}
