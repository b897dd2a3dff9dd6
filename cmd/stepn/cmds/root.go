package cmds

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/go-go-golems/stepn/pkg/config"
)

// NewRootCmd builds the stepn command tree. Running the root command with no
// subcommand behaves like `stepn run`.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:     "stepn [services...]",
		Short:   "stepn is a local multi-service process orchestrator",
		Version: version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initLogging(cmd)
		},
		RunE: runServices,
	}

	root.PersistentFlags().String("config", "", "Path to the service config (defaults to proc.toml, then proc.yaml)")
	root.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newExecuteCmd())
	root.AddCommand(newDepsCmd())
	return root
}

func initLogging(cmd *cobra.Command) error {
	levelStr, err := cmd.Root().PersistentFlags().GetString("log-level")
	if err != nil {
		return err
	}
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", levelStr)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		path, err = config.DefaultPath(cwd)
		if err != nil {
			return nil, err
		}
	} else if !filepath.IsAbs(path) {
		path, err = filepath.Abs(path)
		if err != nil {
			return nil, err
		}
	}
	return config.Load(path)
}
