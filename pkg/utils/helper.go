package utils

import (
	"strconv"
	"strings"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// NormalizeStreet prefixes the house number to the street name so address
// deduplication keys on the full street line.
func NormalizeStreet(street, houseNumber string) string {
	street = strings.TrimSpace(street)
	houseNumber = strings.TrimSpace(houseNumber)
	if houseNumber == "" {
		return street
	}
	return houseNumber + " " + street
}

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

func CalculateOffset(page, perPage int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * perPage
}
