package cmds

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newDepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deps [service]",
		Short: "Show the dependency graph, or the direct dependents of one service",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				name := args[0]
				if _, ok := cfg.Services[name]; !ok {
					return errors.Errorf("unknown service %q (valid services: %s)",
						name, strings.Join(cfg.ServiceNames(), ", "))
				}
				for _, dependent := range cfg.DependentsOf(name) {
					_, _ = fmt.Fprintln(out, dependent)
				}
				return nil
			}

			for _, name := range cfg.ServiceNames() {
				_, _ = fmt.Fprintln(out, name)
				for _, dep := range cfg.Services[name].DependsOn {
					_, _ = fmt.Fprintf(out, "  └─ %s\n", dep)
				}
			}
			return nil
		},
	}
}
