package dbtime

import (
	"log"
	"sync"
	"time"
)

// SchoolTimezone is where the school operates; month windows and request
// logs use it.
const SchoolTimezone = "Africa/Kinshasa"

var (
	zoneOnce sync.Once
	zone     *time.Location
)

// SchoolLocation falls back to UTC when the tz database is missing.
func SchoolLocation() *time.Location {
	zoneOnce.Do(func() {
		loc, err := time.LoadLocation(SchoolTimezone)
		if err != nil {
			log.Printf("[WARN] fuseau %s introuvable, UTC utilisé: %v", SchoolTimezone, err)
			loc = time.UTC
		}
		zone = loc
	})
	return zone
}

func NowInSchool() time.Time {
	return time.Now().In(SchoolLocation())
}

// ToSchoolTime converts t (usually UTC from the database). Zero stays zero.
func ToSchoolTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(SchoolLocation())
}
