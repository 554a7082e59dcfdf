package builder

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aslanbekov/pcforge-backend/pkg/enums"
)

const (
	// cpuDefaultPower is assumed when a selected CPU has no parseable power spec.
	cpuDefaultPower = 65
	// systemPowerOverhead covers board, drives, and fans in the PSU estimate.
	systemPowerOverhead = 100
	// psuHeadroomFactor is the safety margin required over estimated draw.
	psuHeadroomFactor = 1.2
)

// Compatibility is the result of the pairwise heuristic checks.
type Compatibility struct {
	IsCompatible    bool     `json:"isCompatible"`
	Warnings        []string `json:"warnings"`
	Recommendations []string `json:"recommendations"`
}

// Analysis aggregates compatibility with the build-quality metrics.
type Analysis struct {
	TotalPrice       int           `json:"totalPrice"`
	PowerConsumption int           `json:"powerConsumption"`
	BalanceScore     int           `json:"balanceScore"`
	PerformanceScore int           `json:"performanceScore"`
	Compatibility    Compatibility `json:"compatibility"`
}

// Metrics is the full derived view recomputed from a state snapshot.
type Metrics struct {
	TotalPrice         int         `json:"totalPrice"`
	BudgetUsagePercent float64     `json:"budgetUsagePercent"`
	IsOverBudget       bool        `json:"isOverBudget"`
	FilteredCatalog    []Component `json:"filteredCatalog"`
	Analysis           Analysis    `json:"analysis"`
}

// ComputeMetrics derives every read-side value from the state snapshot.
func ComputeMetrics(state State) Metrics {
	total := TotalPrice(state)
	return Metrics{
		TotalPrice:         total,
		BudgetUsagePercent: BudgetUsagePercent(state),
		IsOverBudget:       total > state.Budget,
		FilteredCatalog:    FilteredCatalog(state),
		Analysis:           Analyze(state),
	}
}

// TotalPrice sums the price of every selected component.
func TotalPrice(state State) int {
	total := 0
	for _, component := range state.Selected {
		total += component.Price
	}
	return total
}

// BudgetUsagePercent reports spend as a percentage of budget. A zero budget
// yields 0 rather than dividing.
func BudgetUsagePercent(state State) float64 {
	if state.Budget == 0 {
		return 0
	}
	return float64(TotalPrice(state)) / float64(state.Budget) * 100
}

// IsOverBudget reports whether the selection costs more than the budget.
func IsOverBudget(state State) bool {
	return TotalPrice(state) > state.Budget
}

// FilteredCatalog returns the catalog rows matching the active category,
// search term, and filter predicates, ordered per the sort settings. Ties keep
// catalog order.
func FilteredCatalog(state State) []Component {
	matched := make([]Component, 0, len(state.Catalog))
	for _, component := range state.Catalog {
		if matchesFilters(state, component) {
			matched = append(matched, component)
		}
	}

	sortBy := state.Filters.SortBy
	sortOrder := state.Filters.SortOrder
	sort.SliceStable(matched, func(i, j int) bool {
		comparison := compareComponents(matched[i], matched[j], sortBy)
		if sortOrder == enums.SortDesc {
			return comparison > 0
		}
		return comparison < 0
	})
	return matched
}

func matchesFilters(state State, component Component) bool {
	if component.Category != state.ActiveCategory {
		return false
	}
	if state.SearchTerm != "" &&
		!strings.Contains(strings.ToLower(component.Name), strings.ToLower(state.SearchTerm)) {
		return false
	}
	if len(state.Filters.Brands) > 0 && !containsString(state.Filters.Brands, component.Brand) {
		return false
	}
	if state.Filters.PriceRange != nil {
		if component.Price < state.Filters.PriceRange[0] || component.Price > state.Filters.PriceRange[1] {
			return false
		}
	}
	if state.Filters.MinRating > 0 && component.Rating < state.Filters.MinRating {
		return false
	}
	if len(state.Filters.Availability) > 0 &&
		!containsAvailability(state.Filters.Availability, component.Availability) {
		return false
	}
	return true
}

func compareComponents(a, b Component, key enums.SortKey) int {
	switch key {
	case enums.SortByPrice:
		return a.Price - b.Price
	case enums.SortByRating:
		switch {
		case a.Rating < b.Rating:
			return -1
		case a.Rating > b.Rating:
			return 1
		}
		return 0
	case enums.SortByName:
		return strings.Compare(a.Name, b.Name)
	}
	return 0
}

// CheckCompatibility runs the PSU headroom and CPU/GPU price balance checks
// against the current selection.
func CheckCompatibility(state State) Compatibility {
	warnings := []string{}
	recommendations := []string{}

	cpu, hasCPU := state.Selected[enums.CategoryCPU]
	gpu, hasGPU := state.Selected[enums.CategoryGPU]
	psu, hasPSU := state.Selected[enums.CategoryPSU]

	if hasPSU && hasGPU {
		cpuPower := cpuDefaultPower
		if hasCPU {
			cpuPower = cpu.power(cpuDefaultPower)
		}
		requiredPower := gpu.power(0) + cpuPower + systemPowerOverhead
		threshold := float64(requiredPower) * psuHeadroomFactor
		if float64(psu.power(0)) < threshold {
			warnings = append(warnings, "Мощность блока питания может быть недостаточной")
			recommendations = append(recommendations,
				fmt.Sprintf("Рекомендуется БП мощностью не менее %dW", int(math.Ceil(threshold))))
		}
	}

	if hasCPU && hasGPU {
		// Float division so a zero CPU price degrades to +Inf, not a panic.
		ratio := float64(gpu.Price) / float64(cpu.Price)
		switch {
		case ratio > 3:
			warnings = append(warnings, "Видеокарта слишком мощная для данного процессора")
			recommendations = append(recommendations,
				"Рассмотрите более мощный процессор или менее дорогую видеокарту")
		case ratio < 0.5:
			warnings = append(warnings, "Процессор слишком мощный для данной видеокарты")
			recommendations = append(recommendations,
				"Рассмотрите более мощную видеокарту или менее дорогой процессор")
		}
	}

	return Compatibility{
		IsCompatible:    len(warnings) == 0,
		Warnings:        warnings,
		Recommendations: recommendations,
	}
}

// Analyze computes power draw, price balance, and performance aggregates for
// the selection. An empty selection scores as perfectly balanced (100) with
// zero performance.
func Analyze(state State) Analysis {
	compatibility := CheckCompatibility(state)

	powerConsumption := 0
	for _, component := range state.Selected {
		powerConsumption += component.power(0)
	}

	balanceScore := 100
	performanceScore := 0
	if count := len(state.Selected); count > 0 {
		sum := 0
		ratingSum := 0.0
		for _, component := range state.Selected {
			sum += component.Price
			ratingSum += component.Rating * 10
		}
		mean := float64(sum) / float64(count)

		variance := 0.0
		for _, component := range state.Selected {
			deviation := float64(component.Price) - mean
			variance += deviation * deviation
		}
		variance /= float64(count)

		balanceScore = int(math.Round(math.Max(0, 100-variance/10_000)))
		performanceScore = int(math.Round(ratingSum / float64(count)))
	}

	return Analysis{
		TotalPrice:       TotalPrice(state),
		PowerConsumption: powerConsumption,
		BalanceScore:     balanceScore,
		PerformanceScore: performanceScore,
		Compatibility:    compatibility,
	}
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func containsAvailability(values []enums.Availability, target enums.Availability) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
