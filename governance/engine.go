package governance

import (
	"fmt"

	"github.com/c360studio/semarch/repository"
)

// Status is the validation outcome.
type Status string

const (
	// StatusAccepted means the model passed governance.
	StatusAccepted Status = "accepted"
	// StatusRejected means a rule produced evidence under strict mode.
	StatusRejected Status = "rejected"
)

// Result contains the outcome of validating a model against the catalog.
// Rejected results carry the identity of the deciding rule and its
// evidence; advisory results carry the same findings as non-blocking
// advisories.
type Result struct {
	Status     Status   `json:"status"`
	Mode       Mode     `json:"mode"`
	RuleID     string   `json:"rule_id,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
	Advisories []string `json:"advisories,omitempty"`
}

// Accepted reports whether the model passed governance.
func (r *Result) Accepted() bool {
	return r.Status == StatusAccepted
}

// Engine validates repository snapshots against the rule catalog.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine over the default catalog.
func NewEngine() *Engine {
	return &Engine{rules: Catalog()}
}

// Rules returns the catalog the engine evaluates, in priority order.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Validate evaluates the catalog in priority order. The error return is
// reserved for invalid configuration; a failing model is a Result, not
// an error.
//
// Under strict mode the first rule with evidence decides the outcome and
// later rules are skipped. Under advisory mode the result is always
// accepted and the first rule's findings ride along as advisories.
func (e *Engine) Validate(store *repository.Store, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("governance config: %w", err)
	}

	for _, rule := range e.rules {
		evidence := rule.Evaluate(store, cfg)
		if len(evidence) == 0 {
			continue
		}
		if cfg.Mode == ModeAdvisory {
			return &Result{
				Status:     StatusAccepted,
				Mode:       cfg.Mode,
				RuleID:     rule.ID(),
				Advisories: evidence,
			}, nil
		}
		return &Result{
			Status:     StatusRejected,
			Mode:       cfg.Mode,
			RuleID:     rule.ID(),
			Highlights: evidence,
		}, nil
	}

	return &Result{Status: StatusAccepted, Mode: cfg.Mode}, nil
}

// ValidateStore is a convenience function for one-shot validation with
// the default catalog.
func ValidateStore(store *repository.Store, cfg Config) (*Result, error) {
	return NewEngine().Validate(store, cfg)
}
