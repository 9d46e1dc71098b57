package interaction

// Sequencer orders responses to concurrently issued requests.
//
// Policy: the most recently issued request wins. A response is accepted only
// if its sequence number is newer than the last accepted one and it was issued
// after the last Invalidate. Arrival order does not matter.
type Sequencer struct {
	next    uint64 // last issued
	applied uint64 // last accepted
	floor   uint64 // responses <= floor are stale
}

// Issue tags a new request and returns its sequence number.
func (s *Sequencer) Issue() uint64 {
	s.next++
	return s.next
}

// Accept reports whether the response for seq should be applied, and records
// it as the newest applied response if so.
func (s *Sequencer) Accept(seq uint64) bool {
	if seq <= s.floor || seq <= s.applied || seq > s.next {
		return false
	}
	s.applied = seq
	return true
}

// Invalidate discards every request issued so far.
func (s *Sequencer) Invalidate() {
	s.floor = s.next
}

// Pending reports whether the newest issued request is still unresolved and
// not invalidated. It drives the loading indicator.
func (s *Sequencer) Pending() bool {
	return s.next > s.floor && s.next > s.applied
}
