// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"emptrack_backend/internals/configs"
)

const (
	LocAppLoc  = "app_loc" // *time.Location
	DateLayout = "2006-01-02"
)

// GetLocation: Locals("app_loc") when a middleware set it, else APP_TIMEZONE.
func GetLocation(c *fiber.Ctx) *time.Location {
	if c != nil {
		if loc, ok := c.Locals(LocAppLoc).(*time.Location); ok && loc != nil {
			return loc
		}
	}
	loc := configs.Location()
	if c != nil {
		c.Locals(LocAppLoc, loc)
	}
	return loc
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return StartOfDay(a, loc).Equal(StartOfDay(b, loc))
}

// ParseDate parses "YYYY-MM-DD" as midnight in loc. Empty input → zero time, nil.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, s, loc)
}

func NowIn(c *fiber.Ctx) time.Time {
	return time.Now().In(GetLocation(c))
}
