package clock

import "time"

// Clock abstracts time so activity entries and analysis summaries get
// deterministic timestamps in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
