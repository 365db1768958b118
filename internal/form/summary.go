package form

import "sort"

// TopDepartments counts entries per department and returns the n largest,
// by descending count. Ties keep the order in which departments are first
// encountered while walking entries. Never returns more than n rows.
func TopDepartments(entries []Entry, n int) []DepartmentCount {
	if n <= 0 || len(entries) == 0 {
		return nil
	}

	var counts []DepartmentCount
	pos := make(map[string]int)
	for _, e := range entries {
		if e.Department == "" {
			continue
		}
		if i, ok := pos[e.Department]; ok {
			counts[i].Count++
			continue
		}
		pos[e.Department] = len(counts)
		counts = append(counts, DepartmentCount{Department: e.Department, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
