// Package orchestrator runs a set of service definitions as supervised child
// processes: it gates startup on dependency readiness, multiplexes child
// output to a labeled console stream, restarts crashed services within their
// configured budget, and tears every child down on interrupt.
package orchestrator

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/go-go-golems/stepn/pkg/config"
	"github.com/go-go-golems/stepn/pkg/console"
)

// ChildMarkerEnv is set on every spawned child so processes can tell they are
// managed by stepn.
const ChildMarkerEnv = "IS_STEPN"

type Options struct {
	// Output receives the children's multiplexed log lines. Defaults to
	// os.Stdout.
	Output io.Writer
	// DependencyPoll is the interval at which a task re-checks an unready
	// dependency. Defaults to 1s.
	DependencyPoll time.Duration
	// RestartBackoff is the pause before respawning a crashed service.
	// Defaults to 1s.
	RestartBackoff time.Duration
	// ShutdownPoll is the interval at which the interrupt handler re-probes
	// the process table. Defaults to 500ms.
	ShutdownPoll time.Duration
}

type Orchestrator struct {
	cfg     *config.Config
	opts    Options
	ready   *ReadinessRegistry
	tracker *ShutdownTracker
	printer *console.Printer
}

func New(cfg *config.Config, opts Options) *Orchestrator {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.DependencyPoll <= 0 {
		opts.DependencyPoll = 1 * time.Second
	}
	if opts.RestartBackoff <= 0 {
		opts.RestartBackoff = 1 * time.Second
	}
	if opts.ShutdownPoll <= 0 {
		opts.ShutdownPoll = 500 * time.Millisecond
	}
	return &Orchestrator{
		cfg:     cfg,
		opts:    opts,
		tracker: NewShutdownTracker(),
	}
}

// Run starts one lifecycle task per selected service and blocks until every
// task has finished. An empty selection runs everything; otherwise the
// selection is expanded to include its transitive dependencies. The interrupt
// handler is installed before the first task starts.
func (o *Orchestrator) Run(ctx context.Context, selected []string) error {
	names, err := o.selectServices(selected)
	if err != nil {
		return err
	}

	o.ready = NewReadinessRegistry(names)
	o.printer = console.NewPrinter(o.opts.Output, names)
	o.installInterruptHandler()

	// A plain group, not WithContext: one service's spawn failure must not
	// cancel its siblings.
	g := new(errgroup.Group)
	for _, name := range names {
		name := name
		g.Go(func() error {
			return o.superviseService(ctx, name, o.cfg.Services[name])
		})
	}
	err = g.Wait()
	log.Info().Msg("stepn finished")
	return err
}

func (o *Orchestrator) selectServices(selected []string) ([]string, error) {
	if len(selected) == 0 {
		return o.cfg.ServiceNames(), nil
	}
	for _, name := range selected {
		if _, ok := o.cfg.Services[name]; !ok {
			return nil, errors.Errorf("unknown service %q (valid services: %s)",
				name, strings.Join(o.cfg.ServiceNames(), ", "))
		}
	}
	return o.cfg.ResolveTransitive(selected), nil
}

// childEnv merges the parent environment, the stepn marker, the env_file
// variables, and the service's own overrides, in that order of precedence.
func (o *Orchestrator) childEnv(svc config.Service) []string {
	env := append(os.Environ(), ChildMarkerEnv+"=true")
	for k, v := range o.cfg.BaseEnv() {
		env = append(env, k+"="+v)
	}
	for k, v := range svc.Environments {
		env = append(env, k+"="+v)
	}
	return env
}
