package learn

import "sort"

// LabelEncode encodes categories as integers in sorted category order, so
// the lowest code belongs to the alphabetically first category.
func LabelEncode(data []string) ([]int, []string) {
	seen := map[string]struct{}{}
	var classes []string
	for _, v := range data {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			classes = append(classes, v)
		}
	}
	sort.Strings(classes)
	code := make(map[string]int, len(classes))
	for i, c := range classes {
		code[c] = i
	}
	out := make([]int, len(data))
	for i, v := range data {
		out[i] = code[v]
	}
	return out, classes
}
