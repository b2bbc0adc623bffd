// Package chunkpolicy decides how a decoder or editor treats a chunk based
// on its type code and the set of chunk types it understands.
package chunkpolicy

import (
	"fmt"

	"github.com/danmuck/chunkctl/internal/protocol/chunktype"
	"github.com/rs/zerolog/log"
)

// Action is what a decoder or editor does with a chunk.
type Action int

const (
	ActionProcess Action = iota
	ActionSkip
	ActionCopy
	ActionDrop
)

func (a Action) String() string {
	switch a {
	case ActionProcess:
		return "process"
	case ActionSkip:
		return "skip"
	case ActionCopy:
		return "copy"
	case ActionDrop:
		return "drop"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

const (
	ReasonUnknownCritical = "unknown critical chunk"
	ReasonReservedBit     = "reserved bit set"
)

// DecisionError means the decoder must stop at this chunk.
type DecisionError struct {
	Tag    chunktype.Tag
	Reason string
}

func (e DecisionError) Error() string {
	return fmt.Sprintf("chunkpolicy: chunk_type=%s: %s", e.Tag, e.Reason)
}

// Policy holds the chunk types a consumer understands. The zero Policy knows
// nothing and treats every critical chunk as fatal.
type Policy struct {
	known          map[chunktype.Tag]struct{}
	strictReserved bool
}

// New returns a Policy that understands the given chunk types.
func New(known []chunktype.Tag, strictReserved bool) Policy {
	p := Policy{
		known:          make(map[chunktype.Tag]struct{}, len(known)),
		strictReserved: strictReserved,
	}
	for _, t := range known {
		p.known[t] = struct{}{}
	}
	return p
}

// Default knows the base-format chunk types and does not enforce the reserved bit.
func Default() Policy {
	return New(chunktype.Standard(), false)
}

// Knows reports whether t is one of the understood chunk types.
func (p Policy) Knows(t chunktype.Tag) bool {
	_, ok := p.known[t]
	return ok
}

// StrictReserved reports whether a lowercase reserved byte aborts decoding.
func (p Policy) StrictReserved() bool {
	return p.strictReserved
}

// Decide returns how a decoder handles a chunk of type t. A DecisionError
// means decoding must abort.
func (p Policy) Decide(t chunktype.Tag) (Action, error) {
	log.Debug().Str("chunk_type", t.String()).Msg("chunkpolicy.Decide")
	if p.strictReserved && !t.IsReservedBitValid() {
		log.Warn().Str("chunk_type", t.String()).Msg("chunkpolicy.Decide reserved bit set")
		return ActionSkip, DecisionError{Tag: t, Reason: ReasonReservedBit}
	}
	if p.Knows(t) {
		return ActionProcess, nil
	}
	if t.IsCritical() {
		log.Warn().Str("chunk_type", t.String()).Msg("chunkpolicy.Decide unknown critical chunk")
		return ActionSkip, DecisionError{Tag: t, Reason: ReasonUnknownCritical}
	}
	log.Debug().Str("chunk_type", t.String()).Msg("chunkpolicy.Decide skipping unknown ancillary chunk")
	return ActionSkip, nil
}

// CopyAction returns whether an editor keeps a chunk of type t when writing
// a modified container. criticalModified reports whether any critical chunk
// was changed by the edit.
func (p Policy) CopyAction(t chunktype.Tag, criticalModified bool) Action {
	action := ActionCopy
	switch {
	case t.IsCritical(), t.IsSafeToCopy(), p.Knows(t):
	case criticalModified:
		action = ActionDrop
	}
	log.Debug().
		Str("chunk_type", t.String()).
		Bool("critical_modified", criticalModified).
		Str("action", action.String()).
		Msg("chunkpolicy.CopyAction")
	return action
}
