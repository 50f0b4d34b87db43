package utils

import "strings"

// StringSliceContainsElement checks if a string slice contains a specific element
func StringSliceContainsElement(slice *[]string, element string) bool {
	for _, s := range *slice {
		if s == element {
			return true
		}
	}
	return false
}

// RemoveEmptyStrings trims whitespace from each element and drops the
// elements that are empty after trimming
func RemoveEmptyStrings(slice []string) []string {
	result := make([]string, 0, len(slice))
	for _, s := range slice {
		trimmed := strings.TrimSpace(s)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
