package recurrence

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Freq int

const (
	Daily Freq = iota
	Weekly
	Monthly
)

var freqNames = map[Freq]string{
	Daily:   "DAILY",
	Weekly:  "WEEKLY",
	Monthly: "MONTHLY",
}

var freqFromName = map[string]Freq{
	"DAILY":   Daily,
	"WEEKLY":  Weekly,
	"MONTHLY": Monthly,
}

var dayNames = map[string]time.Weekday{
	"SU": time.Sunday,
	"MO": time.Monday,
	"TU": time.Tuesday,
	"WE": time.Wednesday,
	"TH": time.Thursday,
	"FR": time.Friday,
	"SA": time.Saturday,
}

var dayAbbrev = map[time.Weekday]string{
	time.Sunday:    "SU",
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
}

// TimeOfDay is a wall-clock time with minute granularity.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Rule is one recurrence variant: daily, weekly on a weekday set, or monthly
// on a day-of-month set, each at a single time of day. A definition holds a
// list of rules; any match fires it.
type Rule struct {
	Freq       Freq
	ByDay      []time.Weekday // for WEEKLY: which weekdays (required)
	ByMonthDay []int          // for MONTHLY: which days of month (required)
	At         TimeOfDay
}

// Parse parses a rule string like "FREQ=WEEKLY;BYDAY=MO,WE;TIME=09:00".
func Parse(rule string) (Rule, error) {
	if rule == "" {
		return Rule{}, fmt.Errorf("empty rule")
	}

	var r Rule
	var hasFreq, hasTime bool

	parts := strings.Split(rule, ";")
	for _, part := range parts {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return Rule{}, fmt.Errorf("invalid rule part: %q", part)
		}
		key, val := kv[0], kv[1]

		switch key {
		case "FREQ":
			f, ok := freqFromName[val]
			if !ok {
				return Rule{}, fmt.Errorf("unknown frequency: %q", val)
			}
			r.Freq = f
			hasFreq = true

		case "BYDAY":
			days := strings.Split(val, ",")
			for _, d := range days {
				wd, ok := dayNames[strings.TrimSpace(d)]
				if !ok {
					return Rule{}, fmt.Errorf("unknown day: %q", d)
				}
				r.ByDay = append(r.ByDay, wd)
			}

		case "BYMONTHDAY":
			days := strings.Split(val, ",")
			for _, d := range days {
				n, err := strconv.Atoi(strings.TrimSpace(d))
				if err != nil || n < 1 || n > 31 {
					return Rule{}, fmt.Errorf("invalid BYMONTHDAY: %q", d)
				}
				r.ByMonthDay = append(r.ByMonthDay, n)
			}

		case "TIME":
			at, err := parseTimeOfDay(val)
			if err != nil {
				return Rule{}, err
			}
			r.At = at
			hasTime = true

		default:
			return Rule{}, fmt.Errorf("unsupported rule key: %q", key)
		}
	}

	if !hasFreq {
		return Rule{}, fmt.Errorf("FREQ is required")
	}
	if !hasTime {
		return Rule{}, fmt.Errorf("TIME is required")
	}
	if r.Freq == Weekly && len(r.ByDay) == 0 {
		return Rule{}, fmt.Errorf("FREQ=WEEKLY requires BYDAY")
	}
	if r.Freq == Monthly && len(r.ByMonthDay) == 0 {
		return Rule{}, fmt.Errorf("FREQ=MONTHLY requires BYMONTHDAY")
	}
	if r.Freq != Weekly && len(r.ByDay) > 0 {
		return Rule{}, fmt.Errorf("BYDAY is only valid with FREQ=WEEKLY")
	}
	if r.Freq != Monthly && len(r.ByMonthDay) > 0 {
		return Rule{}, fmt.Errorf("BYMONTHDAY is only valid with FREQ=MONTHLY")
	}

	return r, nil
}

// ParseList parses a whitespace-separated list of rule strings. The rules are
// OR'd by the evaluator.
func ParseList(rules string) ([]Rule, error) {
	fields := strings.Fields(rules)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no recurrence rules")
	}

	parsed := make([]Rule, 0, len(fields))
	for _, f := range fields {
		r, err := Parse(f)
		if err != nil {
			return nil, fmt.Errorf("parse rule %q: %w", f, err)
		}
		parsed = append(parsed, r)
	}
	return parsed, nil
}

func parseTimeOfDay(s string) (TimeOfDay, error) {
	kv := strings.SplitN(s, ":", 2)
	if len(kv) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid TIME: %q", s)
	}
	h, err := strconv.Atoi(kv[0])
	if err != nil || h < 0 || h > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid TIME hour: %q", s)
	}
	m, err := strconv.Atoi(kv[1])
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid TIME minute: %q", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// Matches reports whether the rule fires at the given local wall-clock time.
// Granularity is the minute; seconds are ignored.
func (r Rule) Matches(local time.Time) bool {
	if local.Hour() != r.At.Hour || local.Minute() != r.At.Minute {
		return false
	}

	switch r.Freq {
	case Daily:
		return true
	case Weekly:
		wd := local.Weekday()
		for _, d := range r.ByDay {
			if d == wd {
				return true
			}
		}
		return false
	case Monthly:
		dom := local.Day()
		for _, d := range r.ByMonthDay {
			if d == dom {
				return true
			}
		}
		return false
	}
	return false
}

// String serializes the rule back to its text form.
func (r Rule) String() string {
	var parts []string
	parts = append(parts, "FREQ="+freqNames[r.Freq])

	if len(r.ByDay) > 0 {
		var days []string
		for _, d := range r.ByDay {
			days = append(days, dayAbbrev[d])
		}
		parts = append(parts, "BYDAY="+strings.Join(days, ","))
	}

	if len(r.ByMonthDay) > 0 {
		var days []string
		for _, d := range r.ByMonthDay {
			days = append(days, strconv.Itoa(d))
		}
		parts = append(parts, "BYMONTHDAY="+strings.Join(days, ","))
	}

	parts = append(parts, "TIME="+r.At.String())
	return strings.Join(parts, ";")
}

// Describe returns a human-readable description of the rule.
func (r Rule) Describe() string {
	switch r.Freq {
	case Daily:
		return fmt.Sprintf("Every day at %s", r.At)
	case Weekly:
		var names []string
		for _, d := range r.ByDay {
			names = append(names, d.String()[:3])
		}
		return fmt.Sprintf("Weekly on %s at %s", strings.Join(names, ", "), r.At)
	case Monthly:
		var days []string
		for _, d := range r.ByMonthDay {
			days = append(days, strconv.Itoa(d))
		}
		return fmt.Sprintf("Monthly on day %s at %s", strings.Join(days, ", "), r.At)
	}
	return ""
}
