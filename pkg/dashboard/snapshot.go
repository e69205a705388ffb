// Package dashboard is the analytics engine of kardex. It turns a roster and
// a reference date into a Snapshot of demographics, birthday windows,
// tenure rankings and occupancy alerts.
//
// This is a pure package: it performs no I/O and never reads the clock, the
// reference date is always passed in.
package dashboard

import (
	"time"

	"github.com/gnames/kardex/pkg/roster"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the complete result of one engine run.
type Snapshot struct {
	Reference    time.Time        `json:"reference"`
	Total        int              `json:"total"`
	Demographics DemographicStats `json:"demographics"`
	Birthdays    BirthdayWindows  `json:"birthdays"`
	Tenure       TenureRanks      `json:"tenure"`
	Alerts       Alerts           `json:"alerts"`
}

// Assemble runs all components over one roster at the reference day.
// Components share no mutable state and run concurrently. A nil roster is a
// contract violation; an empty roster gives zero counts and empty lists.
func Assemble(
	r *roster.Roster,
	ref time.Time,
	policy CapacityPolicy,
) (*Snapshot, error) {
	if r == nil {
		return nil, ContractError("roster is nil")
	}
	if ref.IsZero() {
		return nil, ContractError("reference date is not set")
	}

	day := roster.Day(ref)
	res := Snapshot{Reference: day, Total: r.Len()}

	var g errgroup.Group
	g.Go(func() error {
		res.Demographics = Demographics(r, day)
		return nil
	})
	g.Go(func() error {
		res.Birthdays = Birthdays(r, day)
		return nil
	})
	g.Go(func() error {
		res.Tenure = Tenure(r, day)
		return nil
	})
	g.Go(func() error {
		res.Alerts = DetectAlerts(r, day, policy)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &res, nil
}
