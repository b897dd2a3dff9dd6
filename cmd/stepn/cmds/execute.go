package cmds

import (
	"github.com/spf13/cobra"

	"github.com/go-go-golems/stepn/pkg/orchestrator"
)

func newExecuteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "execute <service> <command...>",
		Aliases: []string{"e"},
		Short:   "Execute a one-shot command under a service's environment",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			orch := orchestrator.New(cfg, orchestrator.Options{Output: cmd.OutOrStdout()})
			return orch.ExecuteOneShot(cmd.Context(), args[0], args[1:])
		},
	}
}
