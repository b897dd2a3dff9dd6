package cmds

import (
	"github.com/spf13/cobra"

	"github.com/go-go-golems/stepn/pkg/orchestrator"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "run [services...]",
		Aliases: []string{"r"},
		Short:   "Run services from the config, gated on dependency readiness",
		Long: "Run starts every configured service (or the given subset plus its " +
			"transitive dependencies) as a supervised child process and streams " +
			"their interleaved output until all of them have finished.",
		RunE: runServices,
	}
}

func runServices(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	orch := orchestrator.New(cfg, orchestrator.Options{Output: cmd.OutOrStdout()})
	return orch.Run(cmd.Context(), args)
}
