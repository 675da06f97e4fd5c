package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// WeekdaySet is a set of days of the week. On the wire it is a JSON array of
// ISO weekday numbers (1=Monday .. 7=Sunday).
type WeekdaySet map[time.Weekday]bool

// NewWeekdaySet builds a set from the given weekdays.
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	set := make(WeekdaySet, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set
}

// Contains reports whether the set includes d.
func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s[d]
}

// ISO returns the set as sorted ISO weekday numbers.
func (s WeekdaySet) ISO() []int {
	nums := make([]int, 0, len(s))
	for d, ok := range s {
		if ok {
			nums = append(nums, weekdayToISO(d))
		}
	}
	sort.Ints(nums)
	return nums
}

// WeekdaySetFromISO builds a set from ISO weekday numbers. Numbers outside
// 1..7 are rejected.
func WeekdaySetFromISO(nums []int) (WeekdaySet, error) {
	set := make(WeekdaySet, len(nums))
	for _, n := range nums {
		if n < 1 || n > 7 {
			return nil, fmt.Errorf("invalid ISO weekday %d (want 1..7)", n)
		}
		set[isoToWeekday(n)] = true
	}
	return set, nil
}

func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ISO())
}

func (s *WeekdaySet) UnmarshalJSON(data []byte) error {
	var nums []int
	if err := json.Unmarshal(data, &nums); err != nil {
		return err
	}
	set, err := WeekdaySetFromISO(nums)
	if err != nil {
		return err
	}
	*s = set
	return nil
}

func weekdayToISO(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

func isoToWeekday(n int) time.Weekday {
	if n == 7 {
		return time.Sunday
	}
	return time.Weekday(n)
}
