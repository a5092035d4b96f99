package tournamentutil

import "time"

// Clock abstracts time access so services and parsers can be tested
// deterministically.
type Clock interface {
	Now() time.Time
	NowUTC() time.Time
	After(d time.Duration) <-chan time.Time
	Sleep(d time.Duration)
	Parse(layout, value string) (time.Time, error)
	LoadLocation(name string) (*time.Location, error)
}

// RealClock delegates to the time package.
type RealClock struct{}

func (RealClock) Now() time.Time                        { return time.Now() }
func (RealClock) NowUTC() time.Time                     { return time.Now().UTC() }
func (RealClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
func (RealClock) Sleep(d time.Duration)                 { time.Sleep(d) }
func (RealClock) Parse(layout, value string) (time.Time, error) {
	return time.Parse(layout, value)
}
func (RealClock) LoadLocation(name string) (*time.Location, error) {
	return time.LoadLocation(name)
}
