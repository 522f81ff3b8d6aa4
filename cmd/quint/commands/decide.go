package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m0n0x41d/quint-audit/internal/fpf"
	"github.com/m0n0x41d/quint-audit/internal/report"
)

func newDecideCmd(g *globalFlags) *cobra.Command {
	var in fpf.DecisionInput

	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Finalize a decision and write its Design Rationale Record",
		Long: `Select a winning hypothesis (L1 or L2) and record the alternatives it
beat. The winner moves to L3; rejected hypotheses keep their layer.

The DRR is written to <decisions dir>/<decision-id>-<slug>.md.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withTools(cmd.Context(), func(ctx context.Context, tools *fpf.Tools) error {
				res, err := tools.FinalizeDecision(ctx, in)
				if err != nil {
					return err
				}
				s := res.Summary()
				for _, id := range s.Skipped {
					printWarnings(cmd, []string{fmt.Sprintf("skipped rejected id %s (duplicate or winner)", id)})
				}
				fmt.Fprint(cmd.OutOrStdout(), report.Decision(s))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "Decision title (required)")
	f.StringVar(&in.WinnerID, "winner", "", "Winning hypothesis id (required)")
	f.StringSliceVar(&in.RejectedIDs, "reject", nil, "Rejected hypothesis ids (repeatable or comma separated)")
	f.StringVar(&in.Context, "context", "", "Problem context")
	f.StringVar(&in.Decision, "decision", "", "What was decided")
	f.StringVar(&in.Rationale, "rationale", "", "Why the winner was chosen")
	f.StringVar(&in.Consequences, "consequences", "", "Expected consequences")
	f.StringVar(&in.Validity, "validity", "", "When to revisit the decision")
	f.StringVar(&in.Scope, "scope", "", "Where the decision applies")
	return cmd
}
