package enums

import "fmt"

// ComponentCategory represents the fixed hardware slots a build can fill.
type ComponentCategory string

const (
	CategoryCPU         ComponentCategory = "cpu"
	CategoryGPU         ComponentCategory = "gpu"
	CategoryRAM         ComponentCategory = "ram"
	CategoryStorage     ComponentCategory = "storage"
	CategoryPSU         ComponentCategory = "psu"
	CategoryMotherboard ComponentCategory = "motherboard"
	CategoryCooler      ComponentCategory = "cooler"
	CategoryCase        ComponentCategory = "case"
)

var validComponentCategories = []ComponentCategory{
	CategoryCPU,
	CategoryGPU,
	CategoryRAM,
	CategoryStorage,
	CategoryPSU,
	CategoryMotherboard,
	CategoryCooler,
	CategoryCase,
}

// ComponentCategories returns the canonical slot ordering.
func ComponentCategories() []ComponentCategory {
	out := make([]ComponentCategory, len(validComponentCategories))
	copy(out, validComponentCategories)
	return out
}

// String implements fmt.Stringer.
func (c ComponentCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ComponentCategory.
func (c ComponentCategory) IsValid() bool {
	for _, candidate := range validComponentCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseComponentCategory converts raw input into a ComponentCategory.
func ParseComponentCategory(value string) (ComponentCategory, error) {
	for _, candidate := range validComponentCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid component category %q", value)
}
