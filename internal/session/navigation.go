package session

// MoveUp moves the selection one message towards the start.
func (s *Session) MoveUp() { s.moveTo(s.selected - 1) }

// MoveDown moves the selection one message towards the end.
func (s *Session) MoveDown() { s.moveTo(s.selected + 1) }

// MoveTop selects the first message.
func (s *Session) MoveTop() { s.moveTo(0) }

// MoveBottom selects the last message.
func (s *Session) MoveBottom() { s.moveTo(len(s.result.Positions) - 1) }

// PageUp moves the selection n messages towards the start.
func (s *Session) PageUp(n int) { s.moveTo(s.selected - n) }

// PageDown moves the selection n messages towards the end.
func (s *Session) PageDown(n int) { s.moveTo(s.selected + n) }

// moveTo sets the selection clamped to [0, len-1], or 0 when the result
// is empty.
func (s *Session) moveTo(k int) {
	s.selected = max(0, min(k, len(s.result.Positions)-1))
}
