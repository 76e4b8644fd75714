package utils

import (
	"sort"
	"strconv"
)

func ContainsString(targetString string, sliceOfStrings []string) bool {
	for i := range sliceOfStrings {
		if sliceOfStrings[i] == targetString {
			return true
		}
	}
	return false
}

// SortedKeys returns the keys of a string set in ascending order
func SortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// FormatPrice renders a price with the shortest decimal representation that parses back to the same value,
// so 100 is written as "100" and 29.9 as "29.9"
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
