package conflicts

import "time"

// SystemClock текущее время в UTC
type SystemClock struct{}

// Now возвращает текущее время в UTC
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
