package orchestrator

import (
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/stepn/pkg/proc"
)

// installInterruptHandler arms the shutdown coordinator: a goroutine blocked
// on a signal channel rather than true signal-handler-context code. On
// interrupt it drains the tracker and exits the whole process non-zero. The
// channel has depth one; further interrupts during the drain are best-effort
// dropped.
func (o *Orchestrator) installInterruptHandler() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		log.Warn().Msg("interrupt received, shutting down")
		o.terminateTracked()
		os.Exit(1)
	}()
}

// terminateTracked snapshots the tracked children, sends each a graceful
// termination, and blocks until the process table reports every one of them
// gone. It takes the tracker lock only for the snapshot, so it can never
// deadlock against a lifecycle task.
func (o *Orchestrator) terminateTracked() {
	pids := o.tracker.Snapshot()
	for _, pid := range pids {
		if err := proc.Terminate(pid); err != nil {
			log.Warn().Int("pid", pid).Err(err).Msg("failed to signal child")
		}
	}
	for _, pid := range pids {
		for proc.Alive(pid) {
			log.Info().Int("pid", pid).Msg("waiting for child to terminate")
			time.Sleep(o.opts.ShutdownPoll)
		}
	}
	log.Info().Int("children", len(pids)).Msg("all children terminated")
}
