package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m0n0x41d/quint-audit/internal/fpf"
	"github.com/m0n0x41d/quint-audit/internal/report"
)

func newProposeCmd(g *globalFlags) *cobra.Command {
	var in fpf.ProposeInput

	cmd := &cobra.Command{
		Use:   "propose",
		Short: "Propose a new hypothesis at L0",
		Long: `Propose a new hypothesis. It starts at layer L0 and needs a logical
verification (quint verify) before it can be tested.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withTools(cmd.Context(), func(ctx context.Context, tools *fpf.Tools) error {
				h, err := tools.ProposeHypothesis(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), report.Proposal(h))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "Hypothesis title (required)")
	f.StringVar(&in.Content, "content", "", "Hypothesis statement")
	f.StringVar(&in.Scope, "scope", "", "Where the hypothesis applies")
	f.StringVar(&in.Kind, "kind", "system", "Kind: system or episteme")
	return cmd
}

func newVerifyCmd(g *globalFlags) *cobra.Command {
	var checks, verdict string

	cmd := &cobra.Command{
		Use:   "verify <hypothesis-id>",
		Short: "Record a logical verification of a hypothesis",
		Long: `Record the outcome of a logical verification.

  PASS   moves L0 -> L1
  FAIL   moves L0 -> invalid
  REFINE keeps L0

Verifying a hypothesis that is not at L0 records the evidence with a
warning and leaves the layer unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withTools(cmd.Context(), func(ctx context.Context, tools *fpf.Tools) error {
				res, err := tools.VerifyHypothesis(ctx, args[0], checks, verdict)
				if err != nil {
					return err
				}
				s := res.Summary()
				printWarnings(cmd, s.Warnings)
				fmt.Fprint(cmd.OutOrStdout(), report.Transition(s))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&checks, "checks", "", "Verification checks performed")
	f.StringVar(&verdict, "verdict", "", "PASS, FAIL or REFINE (required)")
	return cmd
}

func newTestCmd(g *globalFlags) *cobra.Command {
	var testType, result, verdict string

	cmd := &cobra.Command{
		Use:   "test <hypothesis-id>",
		Short: "Record an empirical test of a hypothesis",
		Long: `Record the outcome of an empirical test. The hypothesis must be at L1
or L2.

  L1 + PASS          moves to L2
  L1 + FAIL/REFINE   stays at L1
  L2 + any verdict   stays at L2 (evidence refresh)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withTools(cmd.Context(), func(ctx context.Context, tools *fpf.Tools) error {
				res, err := tools.TestHypothesis(ctx, args[0], testType, result, verdict)
				if err != nil {
					return err
				}
				s := res.Summary()
				printWarnings(cmd, s.Warnings)
				fmt.Fprint(cmd.OutOrStdout(), report.Transition(s))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&testType, "type", "internal", "Test type: internal or external")
	f.StringVar(&result, "result", "", "Observed result")
	f.StringVar(&verdict, "verdict", "", "PASS, FAIL or REFINE (required)")
	return cmd
}

func newAuditCmd(g *globalFlags) *cobra.Command {
	var risks string

	cmd := &cobra.Command{
		Use:   "audit <hypothesis-id>",
		Short: "Record a risk and bias audit of a hypothesis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withTools(cmd.Context(), func(ctx context.Context, tools *fpf.Tools) error {
				res, err := tools.AuditHypothesis(ctx, args[0], risks)
				if err != nil {
					return err
				}
				s := res.Summary()
				printWarnings(cmd, s.Warnings)
				fmt.Fprint(cmd.OutOrStdout(), report.Audit(s))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&risks, "risks", "", "Risks and biases found (required)")
	return cmd
}
