package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m0n0x41d/quint-audit/internal/fpf"
	"github.com/m0n0x41d/quint-audit/internal/report"
)

func newCalculateRCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "calculate-r <holon-id>",
		Short: "Compute the effective reliability (R_eff) of a hypothesis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withTools(cmd.Context(), func(ctx context.Context, tools *fpf.Tools) error {
				r, err := tools.CalculateR(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), report.Reliability(r, tools.Now().UTC()))
				return nil
			})
		},
	}
}

func newAuditTreeCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "audit-tree <holon-id>",
		Short: "Show a hypothesis and its evidence as a scored tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withTools(cmd.Context(), func(ctx context.Context, tools *fpf.Tools) error {
				out, err := tools.VisualizeAudit(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
}

func newShowCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <holon-id>",
		Short: "Show a holon with its evidence, relations and history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withTools(cmd.Context(), func(ctx context.Context, tools *fpf.Tools) error {
				view, err := tools.ShowHolon(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), view.Render())
				return nil
			})
		},
	}
}

func newStatusCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Count hypotheses per layer and list them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withTools(cmd.Context(), func(ctx context.Context, tools *fpf.Tools) error {
				view, err := tools.Status(ctx)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), view.Render())
				return nil
			})
		},
	}
}
