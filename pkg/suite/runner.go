package suite

import "context"

// Notifier receives unit lifecycle notifications.
type Notifier interface {
	UnitStarted(d Description)
	UnitFinished(r *Result)
}

// Notifiers fans notifications out in order. Nil entries are
// skipped.
type Notifiers []Notifier

func (n Notifiers) UnitStarted(d Description) {
	for _, x := range n {
		if x != nil {
			x.UnitStarted(d)
		}
	}
}

func (n Notifiers) UnitFinished(r *Result) {
	for _, x := range n {
		if x != nil {
			x.UnitFinished(r)
		}
	}
}

// Runner runs a set of units and reports their results.
type Runner interface {
	Description() string
	Run(ctx context.Context, n Notifier) *Report
}

// Filterable is implemented by runners that can narrow their units.
type Filterable interface {
	Filter(f Filter) FilterResult
}
