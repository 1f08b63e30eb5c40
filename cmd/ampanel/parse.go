package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// parseIndexList parses "1,3-5 7" into sorted unique positive ints.
func parseIndexList(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty index list")
	}

	var out []int
	for _, f := range fields {
		lo, hi, isRange := strings.Cut(f, "-")
		start, err := parsePositive(lo)
		if err != nil {
			return nil, err
		}
		end := start
		if isRange {
			if end, err = parsePositive(hi); err != nil {
				return nil, err
			}
			if end < start {
				return nil, fmt.Errorf("invalid range %q: end before start", f)
			}
		}
		for i := start; i <= end; i++ {
			out = append(out, i)
		}
	}

	slices.Sort(out)
	return slices.Compact(out), nil
}

func parsePositive(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid index %d: indexes start at 1", n)
	}
	return n, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// formatIndexes renders sorted indexes compactly, e.g. [1 2 3 5] as "1-3,5".
func formatIndexes(idx []int) string {
	var parts []string
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && idx[j+1] == idx[j]+1 {
			j++
		}
		if j > i {
			parts = append(parts, fmt.Sprintf("%d-%d", idx[i], idx[j]))
		} else {
			parts = append(parts, strconv.Itoa(idx[i]))
		}
		i = j + 1
	}
	return strings.Join(parts, ",")
}
