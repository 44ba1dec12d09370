package grade

import "sort"

// ResolveFrom returns the grade whose inclusive range contains points, or nil
// when the total is unclassified. When ranges overlap the band with the
// lowest MinPoints wins (ties broken by name); the slice is sorted locally so
// callers do not have to guarantee ordering.
func ResolveFrom(grades []SalaryGrade, points float64) *SalaryGrade {
	sorted := make([]SalaryGrade, len(grades))
	copy(sorted, grades)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].MinPoints != sorted[j].MinPoints {
			return sorted[i].MinPoints < sorted[j].MinPoints
		}
		return sorted[i].Name < sorted[j].Name
	})

	for i := range sorted {
		if sorted[i].Contains(points) {
			return &sorted[i]
		}
	}
	return nil
}

// CountMatches reports how many bands contain points; used to surface
// overlapping ranges in logs rather than silently picking one.
func CountMatches(grades []SalaryGrade, points float64) int {
	n := 0
	for i := range grades {
		if grades[i].Contains(points) {
			n++
		}
	}
	return n
}
