// Package engine runs the query-resolution pipeline: admission gate,
// normalization, escalation check, intent classification, synonym
// rewriting and record matching, assembled into a single Decision.
package engine

import (
	"github.com/vatastudio/concierge/internal/catalog"
	"github.com/vatastudio/concierge/internal/intent"
)

// DecisionKind tags the outcome of one resolution run.
type DecisionKind int

const (
	// DecisionRecord means a specific tariff or model was found.
	DecisionRecord DecisionKind = iota
	// DecisionTemplate means a canned per-intent reply (including the
	// "no specific match, see the full list" fallback).
	DecisionTemplate
	// DecisionEscalate means a human was paged.
	DecisionEscalate
	// DecisionBlocked means the gate refused to run the pipeline.
	DecisionBlocked
	// DecisionDataUnavailable means the catalog was never loaded.
	DecisionDataUnavailable
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionRecord:
		return "record"
	case DecisionTemplate:
		return "template"
	case DecisionEscalate:
		return "escalate"
	case DecisionBlocked:
		return "blocked"
	case DecisionDataUnavailable:
		return "data_unavailable"
	default:
		return "unknown"
	}
}

// Decision is the resolved outcome handed back to the transport.
type Decision struct {
	Kind   DecisionKind
	Intent intent.Kind
	// Entities extracted from the message, always populated for
	// non-blocked outcomes.
	Entities intent.Entities
	// Category and Record are set for DecisionRecord.
	Category catalog.Category
	Record   catalog.Record
	// Reason explains Blocked and Escalate outcomes.
	Reason string
	// Reply is the assembled user-facing text.
	Reply string
}
