package orchestrator

import (
	"context"
	"os/exec"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/stepn/pkg/config"
	"github.com/go-go-golems/stepn/pkg/logmux"
)

// superviseService is the lifecycle task for one service: wait for
// dependencies, apply the start delay, then spawn-and-stream in a loop bounded
// by the restart budget. Restarts re-enter at the spawn step; dependencies and
// the delay are only honored once.
func (o *Orchestrator) superviseService(ctx context.Context, name string, svc config.Service) error {
	o.awaitDependencies(name, svc.DependsOn)

	if svc.DelaySec > 0 {
		log.Info().Str("service", name).Int("seconds", svc.DelaySec).Msg("delaying start")
		time.Sleep(time.Duration(svc.DelaySec) * time.Second)
	}

	maxRestarts := svc.EffectiveMaxRestarts()
	restarts := 0
	for {
		if err := o.runOnce(ctx, name, svc); err != nil {
			// Spawn failure: fatal for this service only, never retried.
			log.Error().Str("service", name).Err(err).Msg("service failed to start")
			return err
		}
		if !svc.Restart {
			return nil
		}
		if restarts >= maxRestarts {
			log.Warn().Str("service", name).Int("restarts", restarts).
				Msg("restart limit reached, giving up")
			return nil
		}
		restarts++
		o.ready.SetReady(name, false)
		log.Info().Str("service", name).Int("attempt", restarts).Msg("restarting")
		time.Sleep(o.opts.RestartBackoff)
	}
}

// awaitDependencies polls the readiness registry for each dependency in
// declared order. The wait is unbounded: a dependency that never becomes
// ready blocks this task forever.
func (o *Orchestrator) awaitDependencies(name string, deps []string) {
	for _, dep := range deps {
		for !o.ready.Ready(dep) {
			log.Info().Str("service", name).Str("dependency", dep).Msg("waiting for dependency")
			time.Sleep(o.opts.DependencyPoll)
		}
	}
}

// runOnce spawns the service command once and streams its output until the
// process exits. It returns an error only when the spawn itself fails; the
// child's exit status is irrelevant to the caller's restart decision.
func (o *Orchestrator) runOnce(ctx context.Context, name string, svc config.Service) error {
	triggers := newTriggerSet(svc.OutputTriggers())

	// #nosec G204 -- command comes from the user's own service config.
	cmd := exec.CommandContext(ctx, "sh", "-c", svc.Command)
	cmd.Env = o.childEnv(svc)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "stdout pipe")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return errors.Wrap(err, "stderr pipe")
	}

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "start command %q", svc.Command)
	}

	// Register for shutdown immediately after the spawn, before any
	// suspension point, so the interrupt handler cannot miss this child.
	pid := cmd.Process.Pid
	o.tracker.Add(pid)
	log.Info().Str("service", name).Int("pid", pid).Msg("service started")

	for line := range logmux.Merge(stdout, stderr) {
		o.printer.Print(name, line.Text, line.Stderr)

		// Single readiness policy: with no declared triggers the set is
		// satisfied from the start, so the first line marks the service
		// ready; otherwise lines feed the trigger set until it drains.
		if !triggers.allSeen() {
			triggers.observe(line.Text)
		} else if !o.ready.Ready(name) {
			o.ready.SetReady(name, true)
			log.Debug().Str("service", name).Msg("service ready")
		}
	}

	waitErr := cmd.Wait()
	o.tracker.Remove(pid)

	exitCode := cmd.ProcessState.ExitCode()
	if waitErr != nil {
		log.Info().Str("service", name).Int("exit_code", exitCode).Msg("service exited")
	} else {
		log.Debug().Str("service", name).Int("exit_code", exitCode).Msg("service exited")
	}
	return nil
}
