package service

import "time"

// All notification messages embed dates in Philippine time, rendered the way
// the web client always has: numeric month/day/year with a 12-hour clock.
var manila = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		return time.FixedZone("PHT", 8*3600)
	}
	return loc
}()

func FormatAppointmentDate(t time.Time) string {
	return t.In(manila).Format("1/2/2006, 3:04 PM")
}
