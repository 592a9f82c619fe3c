package profile

import (
	"fighterdata/internal/fighters"
	"strings"
	"time"
)

const dobLayout = "Jan 2, 2006"

// ComputeAge returns the age in whole years at now of someone born on dob
// (formatted like "Jan 22, 1993"). ok is false for the unknown sentinel,
// unparseable dates and birth dates after now.
func ComputeAge(dob string, now time.Time) (age int, ok bool) {
	dob = strings.TrimSpace(dob)
	if dob == "" || dob == fighters.Unknown {
		return 0, false
	}
	birth, err := time.Parse(dobLayout, dob)
	if err != nil {
		return 0, false
	}

	age = now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0, false
	}
	return age, true
}
