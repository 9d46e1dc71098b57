package interaction

// Draft is the feed composer: the post text and the polishing flag.
type Draft struct {
	text    string
	pending int
}

// Text returns the current draft.
func (d *Draft) Text() string { return d.text }

// SetText replaces the draft with user input.
func (d *Draft) SetText(s string) { d.text = s }

// Polishing reports whether a polish request is in flight.
func (d *Draft) Polishing() bool { return d.pending > 0 }

// BeginPolish marks a polish request as started and returns the text to send.
// An empty draft is ignored and ok is false.
func (d *Draft) BeginPolish() (text string, ok bool) {
	if d.text == "" {
		return "", false
	}
	d.pending++
	return d.text, true
}

// CompletePolish overwrites the whole draft with the polished text.
// The previous draft is not kept.
func (d *Draft) CompletePolish(polished string) {
	d.text = polished
	if d.pending > 0 {
		d.pending--
	}
}
