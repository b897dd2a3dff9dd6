package orchestrator

import "strings"

// triggerSet tracks which output-trigger substrings are still unseen for the
// current run attempt of one service. It is rebuilt on every (re)start and
// never shared across services. An empty set is immediately satisfied, which
// makes trigger-less services ready on their first output line.
type triggerSet struct {
	pending map[string]bool // trigger -> seen
}

func newTriggerSet(triggers []string) *triggerSet {
	pending := make(map[string]bool, len(triggers))
	for _, trig := range triggers {
		pending[trig] = false
	}
	return &triggerSet{pending: pending}
}

func (t *triggerSet) allSeen() bool {
	for _, seen := range t.pending {
		if !seen {
			return false
		}
	}
	return true
}

// observe marks every still-unseen trigger contained in line as seen. Each
// trigger is checked independently, so one line may satisfy several.
func (t *triggerSet) observe(line string) {
	for trig, seen := range t.pending {
		if !seen && strings.Contains(line, trig) {
			t.pending[trig] = true
		}
	}
}
