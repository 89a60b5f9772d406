// Package constraint checks placements against the board's design rules.
//
// Validate always evaluates every rule so a report shows the full
// picture rather than the first violation. Contact is legal throughout:
// components may touch each other and the board outline, and the
// crystal's signal path may graze the keep-out zone without crossing it.
package constraint

import (
	"github.com/matzehuels/boardfit/pkg/pcb"
)

// Rule identifies one of the placement rules.
type Rule string

// The rules, in evaluation order.
const (
	RuleBoundary  Rule = "boundary"
	RuleNoOverlap Rule = "no_overlap"
	RuleEdge      Rule = "edge"
	RuleParallel  Rule = "parallel"
	RuleProximity Rule = "proximity"
	RuleBalance   Rule = "balance"
	RuleKeepOut   Rule = "keep_out"
)

// Rules returns all rules in evaluation order.
func Rules() []Rule {
	return []Rule{
		RuleBoundary,
		RuleNoOverlap,
		RuleEdge,
		RuleParallel,
		RuleProximity,
		RuleBalance,
		RuleKeepOut,
	}
}

// Result is the outcome of a single rule. Detail names the offenders on
// failure; the proximity and balance rules always report their measured
// distance.
type Result struct {
	Rule   Rule   `json:"rule" bson:"rule"`
	Passed bool   `json:"passed" bson:"passed"`
	Detail string `json:"detail,omitempty" bson:"detail,omitempty"`
}

// Report is the outcome of a full validation run, one result per rule.
type Report struct {
	Valid   bool     `json:"valid" bson:"valid"`
	Results []Result `json:"results" bson:"results"`
}

// Failed returns the results of the rules that did not pass.
func (r Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.Passed {
			failed = append(failed, res)
		}
	}
	return failed
}

// Result returns the result for one rule, if it was evaluated.
func (r Report) Result(rule Rule) (Result, bool) {
	for _, res := range r.Results {
		if res.Rule == rule {
			return res, true
		}
	}
	return Result{}, false
}

// Validate evaluates every rule against the placement. It returns a
// MALFORMED_PLACEMENT error when the placement does not contain exactly
// one component of each kind; rule evaluation needs all five.
func Validate(p pcb.Placement, cons pcb.Constraints) (Report, error) {
	if err := p.Complete(); err != nil {
		return Report{}, err
	}

	pl := resolve(p, cons)
	results := []Result{
		pl.boundary(),
		pl.noOverlap(),
		pl.edge(),
		pl.parallel(),
		pl.proximity(),
		pl.balance(),
		pl.keepOut(),
	}

	report := Report{Valid: true, Results: results}
	for _, res := range results {
		report.Valid = report.Valid && res.Passed
	}
	return report, nil
}

// placed is a placement resolved for rule evaluation: each component
// looked up once, in canonical order.
type placed struct {
	board   pcb.Board
	cons    pcb.Constraints
	usb     pcb.Component
	micro   pcb.Component
	crystal pcb.Component
	mb1     pcb.Component
	mb2     pcb.Component
	all     []pcb.Component
}

func resolve(p pcb.Placement, cons pcb.Constraints) placed {
	usb, _ := p.Get(pcb.KindUSB)
	micro, _ := p.Get(pcb.KindMicro)
	crystal, _ := p.Get(pcb.KindCrystal)
	mb1, _ := p.Get(pcb.KindMikroBus1)
	mb2, _ := p.Get(pcb.KindMikroBus2)

	return placed{
		board:   p.Board,
		cons:    cons,
		usb:     usb,
		micro:   micro,
		crystal: crystal,
		mb1:     mb1,
		mb2:     mb2,
		all:     []pcb.Component{usb, micro, crystal, mb1, mb2},
	}
}
