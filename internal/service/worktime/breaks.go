package worktime

// Break is a fixed unpaid window on the extended minute axis.
type Break struct {
	Name  string
	Start int
	End   int
}

var (
	LunchBreak  = Break{Name: "lunch", Start: 720, End: 780}
	DinnerBreak = Break{Name: "dinner", Start: 1050, End: 1080}

	// The snack break sits at 00:00-01:00. For an interval that runs past
	// midnight it lies on the next day.
	SnackBreakSameDay = Break{Name: "snack", Start: 0, End: 60}
	SnackBreakNextDay = Break{Name: "snack", Start: 1440, End: 1500}
)

// BreaksFor lists the break windows that apply to [start,end).
func BreaksFor(start, end int) []Break {
	snack := SnackBreakSameDay
	if end > MinutesPerDay {
		snack = SnackBreakNextDay
	}
	return []Break{LunchBreak, DinnerBreak, snack}
}

// ExcludedMinutes is the number of minutes of [start,end) covered by breaks.
func ExcludedMinutes(start, end int) int {
	total := 0
	for _, b := range BreaksFor(start, end) {
		total += OverlapMinutes(start, end, b.Start, b.End)
	}
	return total
}
