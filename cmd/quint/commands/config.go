package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/m0n0x41d/quint-audit/config"
	"github.com/m0n0x41d/quint-audit/internal/fpf"
)

func newInitCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the .quint directory, database and default config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withTools(cmd.Context(), func(ctx context.Context, tools *fpf.Tools) error {
				if err := tools.InitProject(ctx); err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				path := filepath.Join(tools.RootDir, config.FileName)
				if _, err := os.Stat(path); os.IsNotExist(err) && g.configPath == "" {
					if err := config.WriteDefault(path); err != nil {
						return err
					}
					fmt.Fprintf(out, "Wrote %s\n", path)
				}
				pterm.Success.WithWriter(out).Printfln("Initialized quint in %s", tools.GetFPFDir())
				return nil
			})
		},
	}
}

func newConfigCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage quint configuration",
		Long: `Manage quint configuration.

Configuration sources (in order of precedence):
1. Environment variables (QUINT_* prefix, e.g. QUINT_ASSURANCE_SELF_RELIABILITY)
2. Config file (--config, or <root>/quint.toml)
3. Default values`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to <root>/quint.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.configPath
			if path == "" {
				path = filepath.Join(g.root, config.FileName)
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			data, err := config.Encode(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# quint configuration\n%s", data)
			return nil
		},
	})
	return cmd
}
