// Package commands implements the quint command tree. Every command opens
// the store, runs one operation, prints the rendered result to stdout and
// closes the store.
package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/m0n0x41d/quint-audit/assurance"
	"github.com/m0n0x41d/quint-audit/config"
	"github.com/m0n0x41d/quint-audit/db"
	"github.com/m0n0x41d/quint-audit/errors"
	"github.com/m0n0x41d/quint-audit/internal/fpf"
	"github.com/m0n0x41d/quint-audit/logger"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	root       string
	configPath string
	jsonLogs   bool
	verbose    int
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "quint",
		Short: "Epistemic audit ledger for hypotheses, evidence and decisions",
		Long: `quint - Epistemic audit ledger

Records hypotheses, verification checks, empirical tests, audits and
decisions in a local SQLite store and computes the effective reliability
(R_eff) of each hypothesis with the weakest link rule.

Hypotheses move through layers:
  L0 (proposed) -> L1 (verified) -> L2 (tested) -> L3 (decided)
and a failed verification moves an L0 hypothesis to invalid.

Examples:
  quint init
  quint propose --title "Use Redis for caching" --kind system
  quint verify <id> --verdict PASS --checks "invariants hold"
  quint test <id> --type internal --verdict PASS --result "p99 -40%"
  quint calculate-r <id>
  quint decide --title "Cache" --winner <id> --reject <other-id>`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.root, "root", ".", "Project root containing the .quint directory")
	pf.StringVar(&g.configPath, "config", "", "Config file (default <root>/quint.toml when present)")
	pf.BoolVar(&g.jsonLogs, "json-logs", false, "Emit logs as JSON on stderr")
	pf.CountVarP(&g.verbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")

	root.AddCommand(
		newInitCmd(g),
		newProposeCmd(g),
		newVerifyCmd(g),
		newTestCmd(g),
		newAuditCmd(g),
		newDecideCmd(g),
		newCalculateRCmd(g),
		newAuditTreeCmd(g),
		newShowCmd(g),
		newStatusCmd(g),
		newConfigCmd(g),
	)
	return root
}

// loadConfig reads the configuration and initializes the global logger
// from it and the flags.
func (g *globalFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.root, g.configPath)
	if err != nil {
		return nil, err
	}

	level := logger.VerbosityLevel(cfg.Log.Level, g.verbose)
	if err := logger.Initialize(g.jsonLogs || cfg.Log.JSON, level); err != nil {
		return nil, errors.Wrap(err, "initialize logger")
	}
	return cfg, nil
}

func assuranceOptions(cfg *config.Config) assurance.Options {
	a := cfg.Assurance
	return assurance.Options{
		SelfReliability:       a.SelfReliability,
		BiasEvidenceThreshold: a.BiasEvidenceThreshold,
		HighReliability:       a.HighReliability,
		MediumReliability:     a.MediumReliability,
		WeakLinkThreshold:     a.WeakLinkThreshold,
	}
}

// withTools opens the store for the duration of fn.
func (g *globalFlags) withTools(ctx context.Context, fn func(ctx context.Context, tools *fpf.Tools) error) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := db.NewStore(ctx, cfg.DatabasePath(), logger.Named("db"))
	if err != nil {
		return errors.WithHint(err, "Check that the project root is writable, or run `quint init`")
	}
	defer store.Close()

	tools := fpf.NewTools(cfg.Root, store,
		fpf.WithAssurance(assuranceOptions(cfg)),
		fpf.WithDecisionsDir(cfg.DecisionsDir()),
		fpf.WithLogger(logger.Named("fpf")),
	)
	return fn(ctx, tools)
}

// PrintError writes a one-line diagnostic for err, followed by its hints.
func PrintError(w io.Writer, err error) {
	prefix := pterm.Error.WithWriter(w)
	prefix.Println(err.Error())
	if hint := errors.FlattenHints(err); hint != "" {
		for _, line := range strings.Split(hint, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			fmt.Fprintf(w, "  hint: %s\n", line)
		}
	}
}

// printWarnings writes non-fatal warnings to the command's error stream.
func printWarnings(cmd *cobra.Command, warnings []string) {
	for _, w := range warnings {
		pterm.Warning.WithWriter(cmd.ErrOrStderr()).Println(w)
	}
}
