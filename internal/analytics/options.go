package analytics

import "time"

const (
	defaultTopSuppliers  = 5
	defaultTopCategories = 3
)

// Options holds the tunables shared by the analyzers
type Options struct {
	// TopSuppliers is how many scorecards are surfaced for comparative charting.
	TopSuppliers int
	// TopCategories is how many expense categories are highlighted.
	TopCategories int
	// Location is the calendar used to decide what "today" is.
	Location *time.Location
	// Now returns the current instant. Tests pin it.
	Now func() time.Time
}

// DefaultOptions returns the production defaults
func DefaultOptions() Options {
	return Options{
		TopSuppliers:  defaultTopSuppliers,
		TopCategories: defaultTopCategories,
		Location:      time.UTC,
		Now:           time.Now,
	}
}

func (o Options) normalized() Options {
	if o.TopSuppliers <= 0 {
		o.TopSuppliers = defaultTopSuppliers
	}
	if o.TopCategories <= 0 {
		o.TopCategories = defaultTopCategories
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// now returns the current wall clock of the configured location, re-expressed
// in UTC so it can be compared with calendar dates.
func (o Options) now() time.Time {
	t := o.Now().In(o.Location)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// today returns the current calendar date at UTC midnight.
func (o Options) today() time.Time {
	return calendarDate(o.now())
}
