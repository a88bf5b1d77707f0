// Package engine implements the dialogue core: the intent cascade, entity
// extraction, bounded per-conversation context and response generation.
// One Engine instance serves one conversation; the session layer owns the
// mapping from session ids to engines and serializes calls.
package engine

import (
	"strings"

	"github.com/collegechat/collegechat-go/internal/knowledge"
)

// KnowledgeBase is the read-only lookup surface the engine needs.
// *knowledge.Base satisfies it; tests substitute fixtures.
type KnowledgeBase interface {
	Info() knowledge.Info
	Program(name string) (knowledge.Program, bool)
	ProgramNames() []string
	Principal() (knowledge.Principal, bool)
	Faculty() []knowledge.FacultyMember
	UpcomingEvents() []knowledge.Event
}

// Reply is the outcome of one turn: the reply text plus the resolution
// metadata callers log and export.
type Reply struct {
	Text     string
	Intent   string
	Stage    Stage
	Score    float64
	Entities EntitySet
}

// Engine drives one conversation. It owns the dialogue context and is the
// only component that mutates it; resolver and responder stay pure.
//
// Not safe for concurrent use.
type Engine struct {
	kb        KnowledgeBase
	resolver  *Resolver
	responder *Responder
	ctx       *DialogueContext
}

// New assembles an engine with a fresh empty context.
func New(kb KnowledgeBase, catalog *knowledge.Catalog, predictor Predictor, normalize func(string) string, rng func(n int) int, maxTurns int) *Engine {
	return &Engine{
		kb:        kb,
		resolver:  NewResolver(catalog, predictor, normalize),
		responder: NewResponder(kb, catalog, rng),
		ctx:       NewDialogueContext(maxTurns),
	}
}

// Respond handles one user turn end to end: reset detection, intent
// resolution, entity extraction, department carry-over, context append
// and reply generation. Input must be non-empty; the transport layer
// rejects empty messages before they reach here.
func (e *Engine) Respond(input string) Reply {
	lower := strings.ToLower(input)

	// A catalog-wide course question drops the remembered department so
	// the user gets the full listing again.
	reset := isResetQuery(lower)
	if reset {
		e.ctx.ClearStickyDepartment()
	}

	res := e.resolver.Resolve(input, e.ctx)
	ents := ExtractEntities(input, e.kb)

	dept := e.resolveDepartment(lower, ents, res.Intent, reset)
	if dept != "" {
		ents.Department = dept
		e.ctx.SetStickyDepartment(dept)
	}

	e.ctx.Append(Turn{Input: input, Intent: res.Intent, Entities: ents})

	return Reply{
		Text:     e.responder.Generate(res, ents, dept),
		Intent:   res.Intent,
		Stage:    res.Stage,
		Score:    res.Score,
		Entities: ents,
	}
}

// resolveDepartment picks the department for a department-scoped intent.
// Explicit mentions (alias or fuzzy entity) win; otherwise the sticky
// department applies, then the latest courses turn that carried one. A
// reset turn never inherits from history.
func (e *Engine) resolveDepartment(lower string, ents EntitySet, intent string, reset bool) string {
	if intent != "courses" && intent != "fees" {
		return ""
	}
	if !reset {
		if canonical, ok := resolveDepartmentAlias(lower); ok {
			return canonical
		}
	}
	if ents.Department != "" {
		return ents.Department
	}
	if reset {
		return ""
	}
	if sticky := e.ctx.StickyDepartment(); sticky != "" {
		return sticky
	}
	if turn, ok := e.ctx.MostRecentWithIntent("courses"); ok {
		return turn.Entities.Department
	}
	return ""
}

// Reset clears the conversation history and sticky department.
func (e *Engine) Reset() {
	e.ctx.Reset()
}

// ContextLen reports how many turns the context currently holds.
func (e *Engine) ContextLen() int {
	return e.ctx.Len()
}

// LastTurn returns the most recent turn, if any.
func (e *Engine) LastTurn() (Turn, bool) {
	return e.ctx.Last()
}
