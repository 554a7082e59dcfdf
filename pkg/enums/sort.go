package enums

import "fmt"

// SortKey names the attribute a catalog listing is ordered by.
type SortKey string

const (
	SortByPrice      SortKey = "price"
	SortByRating     SortKey = "rating"
	SortByName       SortKey = "name"
	SortByPopularity SortKey = "popularity"
)

var validSortKeys = []SortKey{
	SortByPrice,
	SortByRating,
	SortByName,
	SortByPopularity,
}

// String implements fmt.Stringer.
func (s SortKey) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortKey.
func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey.
func ParseSortKey(value string) (SortKey, error) {
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}

// SortOrder is the direction applied to a SortKey.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// String implements fmt.Stringer.
func (s SortOrder) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortOrder.
func (s SortOrder) IsValid() bool {
	return s == SortAsc || s == SortDesc
}

// ParseSortOrder converts raw input into a SortOrder.
func ParseSortOrder(value string) (SortOrder, error) {
	switch SortOrder(value) {
	case SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	}
	return "", fmt.Errorf("invalid sort order %q", value)
}
