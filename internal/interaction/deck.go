// Package interaction holds the per-screen interaction state machines:
// the matchmaking Deck, the request Sequencer, the assistant Transcript,
// the feed Draft and the navigation Epoch.
//
// None of these types are safe for concurrent use. They are owned by a single
// screen and mutated only from the Bubble Tea update loop.
package interaction

import "scholarsync/internal/types"

// ExhaustedNotice is shown when the deck wraps back to the first profile.
const ExhaustedNotice = "No more profiles for now!"

// Deck is the matchmaking browse state: a fixed list of profiles and a cursor.
type Deck struct {
	profiles []types.User
	index    int
}

// NewDeck returns a deck positioned at the first profile.
func NewDeck(profiles []types.User) *Deck {
	return &Deck{profiles: append([]types.User(nil), profiles...)}
}

// Len returns the number of profiles.
func (d *Deck) Len() int { return len(d.profiles) }

// Index returns the cursor position.
func (d *Deck) Index() int { return d.index }

// Current returns the displayed profile; false when the deck is empty.
func (d *Deck) Current() (types.User, bool) {
	if len(d.profiles) == 0 {
		return types.User{}, false
	}
	return d.profiles[d.index], true
}

// Next advances to the following profile. At the last profile it wraps to 0
// and reports wrapped=true. Reject and accept both call Next.
func (d *Deck) Next() (wrapped bool) {
	if len(d.profiles) == 0 {
		return false
	}
	if d.index < len(d.profiles)-1 {
		d.index++
		return false
	}
	d.index = 0
	return true
}
