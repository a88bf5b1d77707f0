package engine

// Turn is one resolved exchange: the raw input, the intent it resolved to
// and the entities extracted from it. Turns are value objects; once
// appended to the context they are never mutated, only evicted in bulk by
// the ring policy.
type Turn struct {
	Input    string
	Intent   string
	Entities EntitySet
}

// DialogueContext is the bounded per-conversation memory: an ordered FIFO
// of past turns plus the sticky department that lets short follow-ups
// ("3", "and fees?") resolve against earlier mentions.
//
// Not safe for concurrent use: the session layer serializes access so at
// most one resolution is in flight per conversation.
type DialogueContext struct {
	turns      []Turn
	maxTurns   int
	stickyDept string
}

// NewDialogueContext creates an empty context holding at most maxTurns.
func NewDialogueContext(maxTurns int) *DialogueContext {
	if maxTurns <= 0 {
		maxTurns = 1
	}
	return &DialogueContext{
		turns:    make([]Turn, 0, maxTurns),
		maxTurns: maxTurns,
	}
}

// Append pushes a turn onto the history, evicting the oldest turn when
// the ring is full.
func (c *DialogueContext) Append(turn Turn) {
	c.turns = append(c.turns, turn)
	if len(c.turns) > c.maxTurns {
		c.turns = c.turns[len(c.turns)-c.maxTurns:]
	}
}

// Len returns the number of stored turns.
func (c *DialogueContext) Len() int {
	return len(c.turns)
}

// Last returns the most recent turn.
func (c *DialogueContext) Last() (Turn, bool) {
	if len(c.turns) == 0 {
		return Turn{}, false
	}
	return c.turns[len(c.turns)-1], true
}

// Turns returns the history oldest-first. The returned slice must be
// treated as read-only.
func (c *DialogueContext) Turns() []Turn {
	return c.turns
}

// MostRecentWithIntent scans newest-first and returns the first turn
// whose intent matches tag.
func (c *DialogueContext) MostRecentWithIntent(tag string) (Turn, bool) {
	for i := len(c.turns) - 1; i >= 0; i-- {
		if c.turns[i].Intent == tag {
			return c.turns[i], true
		}
	}
	return Turn{}, false
}

// StickyDepartment returns the remembered department, or "" when unset.
// Eviction of the turn that established it does not clear it; only a new
// department mention or a reset-keyword turn does.
func (c *DialogueContext) StickyDepartment() string {
	return c.stickyDept
}

// SetStickyDepartment remembers the department for later under-specified
// turns.
func (c *DialogueContext) SetStickyDepartment(dept string) {
	c.stickyDept = dept
}

// ClearStickyDepartment forgets the remembered department.
func (c *DialogueContext) ClearStickyDepartment() {
	c.stickyDept = ""
}

// Reset drops the full history and the sticky department.
func (c *DialogueContext) Reset() {
	c.turns = c.turns[:0]
	c.stickyDept = ""
}
