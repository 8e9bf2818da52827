package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SchoolYearAt returns the Swiss school-year token ("2025/26") for a date.
// The school year runs August 1 through July 31, so January–July dates belong
// to the year that started the previous calendar year.
func SchoolYearAt(t time.Time) string {
	startYear := t.Year()
	if t.Month() < time.August {
		startYear--
	}
	return formatSchoolYear(startYear)
}

// CurrentSchoolYear returns the school year containing the current date.
func CurrentSchoolYear() string {
	return SchoolYearAt(time.Now())
}

// LastNYears lists the n most recent school years, current first.
func LastNYears(n int, now time.Time) []string {
	curStart := schoolYearStart(SchoolYearAt(now))
	years := make([]string, 0, n)
	for i := 0; i < n; i++ {
		years = append(years, formatSchoolYear(curStart-i))
	}
	return years
}

// SortSchoolYears de-duplicates and orders school-year tokens newest first.
func SortSchoolYears(existing []string) []string {
	seen := make(map[string]struct{}, len(existing))
	uniq := make([]string, 0, len(existing))
	for _, s := range existing {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		uniq = append(uniq, s)
	}
	sort.Slice(uniq, func(i, j int) bool {
		return schoolYearStart(uniq[i]) > schoolYearStart(uniq[j])
	})
	return uniq
}

func formatSchoolYear(startYear int) string {
	end := strconv.Itoa(startYear + 1)
	return fmt.Sprintf("%d/%s", startYear, end[len(end)-2:])
}

func schoolYearStart(token string) int {
	head, _, _ := strings.Cut(token, "/")
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0
	}
	return n
}
