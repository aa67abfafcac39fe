// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "github.com/danielhkuo/ballotline/events"

// Snapshot is the full durable state of one workflow instance: the four
// state records plus the administrator identity. The engine defines no
// on-disk format; a store serializes whatever it is handed here.
type Snapshot struct {
	Admin     string
	Status    Status
	VoterIDs  []string // registration order
	Voters    map[string]Voter
	Proposals []Proposal
	Winners   []Proposal
}

// Snapshot returns a deep copy of the current state, safe to hand to a store
// while the workflow keeps running.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := Snapshot{
		Admin:     w.admin,
		Status:    w.status,
		VoterIDs:  append([]string(nil), w.voterIDs...),
		Voters:    make(map[string]Voter, len(w.voters)),
		Proposals: append([]Proposal(nil), w.proposals...),
		Winners:   append([]Proposal(nil), w.winners...),
	}
	for id, v := range w.voters {
		s.Voters[id] = *v
	}
	return s
}

// FromSnapshot restores a workflow from a previously saved snapshot.
// bus may be nil.
func FromSnapshot(s Snapshot, bus *events.Bus) *Workflow {
	w := &Workflow{
		admin:     s.Admin,
		status:    s.Status,
		voterIDs:  append([]string(nil), s.VoterIDs...),
		voters:    make(map[string]*Voter, len(s.Voters)),
		proposals: append([]Proposal(nil), s.Proposals...),
		winners:   append([]Proposal(nil), s.Winners...),
		bus:       bus,
	}
	for id, v := range s.Voters {
		voter := v
		w.voters[id] = &voter
	}
	return w
}
