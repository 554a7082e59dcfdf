package builder

import (
	"strings"
	"testing"

	dbtypes "github.com/aslanbekov/pcforge-backend/pkg/db/types"
	"github.com/aslanbekov/pcforge-backend/pkg/enums"
)

func selectParts(t *testing.T, state State, components ...Component) State {
	t.Helper()
	for _, component := range components {
		next, applied := Apply(state, SelectComponent(component.Category, component))
		if !applied {
			t.Fatalf("select %s did not apply", component.Category)
		}
		state = next
	}
	return state
}

func TestEmptySelectionMetrics(t *testing.T) {
	state := NewState()
	metrics := ComputeMetrics(state)

	if metrics.TotalPrice != 0 {
		t.Fatalf("expected total 0, got %d", metrics.TotalPrice)
	}
	if metrics.IsOverBudget {
		t.Fatal("expected empty build under budget")
	}
	if metrics.Analysis.BalanceScore != 100 {
		t.Fatalf("expected vacuous balance 100, got %d", metrics.Analysis.BalanceScore)
	}
	if metrics.Analysis.PerformanceScore != 0 {
		t.Fatalf("expected performance 0, got %d", metrics.Analysis.PerformanceScore)
	}
	if !metrics.Analysis.Compatibility.IsCompatible {
		t.Fatal("expected empty build to be compatible")
	}
}

func TestOverBudgetPairNoRatioWarning(t *testing.T) {
	cpu := testComponent(enums.CategoryCPU, 185_000)
	cpu.Rating = 4.8
	gpu := testComponent(enums.CategoryGPU, 259_000)
	gpu.Rating = 4.9

	state := NewState()
	state, _ = Apply(state, SetBudget(400_000))
	state = selectParts(t, state, cpu, gpu)

	metrics := ComputeMetrics(state)
	if metrics.TotalPrice != 444_000 {
		t.Fatalf("expected total 444000, got %d", metrics.TotalPrice)
	}
	if !metrics.IsOverBudget {
		t.Fatal("expected over-budget flag")
	}
	// 259000/185000 ≈ 1.4, inside the balanced band.
	if len(metrics.Analysis.Compatibility.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", metrics.Analysis.Compatibility.Warnings)
	}
	if metrics.Analysis.PerformanceScore != 49 {
		t.Fatalf("expected performance 49, got %d", metrics.Analysis.PerformanceScore)
	}
}

func TestBudgetUsagePercent(t *testing.T) {
	state := NewState()
	state, _ = Apply(state, SetBudget(400_000))
	state = selectParts(t, state, testComponent(enums.CategoryCPU, 100_000))

	if got := BudgetUsagePercent(state); got != 25 {
		t.Fatalf("expected 25%%, got %v", got)
	}

	state, _ = Apply(state, SetBudget(0))
	if got := BudgetUsagePercent(state); got != 0 {
		t.Fatalf("expected zero-budget convention 0, got %v", got)
	}
}

func TestPSUCheckWithDefaultCPUPower(t *testing.T) {
	gpu := testComponent(enums.CategoryGPU, 259_000)
	gpu.Specs = dbtypes.SpecMap{"power": "200"}
	psu := testComponent(enums.CategoryPSU, 67_000)
	psu.Specs = dbtypes.SpecMap{"power": "550"}

	state := selectParts(t, NewState(), gpu, psu)

	// required = 200 + 65 (cpu default) + 100 = 365; threshold 438 ≤ 550.
	compatibility := CheckCompatibility(state)
	if !compatibility.IsCompatible {
		t.Fatalf("expected compatible build, got %v", compatibility.Warnings)
	}
}

func TestPSUCheckUndersizedSupply(t *testing.T) {
	gpu := testComponent(enums.CategoryGPU, 259_000)
	gpu.Specs = dbtypes.SpecMap{"power": "300"}
	cpu := testComponent(enums.CategoryCPU, 185_000)
	cpu.Specs = dbtypes.SpecMap{"power": "150"}
	psu := testComponent(enums.CategoryPSU, 55_000)
	psu.Specs = dbtypes.SpecMap{"power": "400"}

	state := selectParts(t, NewState(), gpu, cpu, psu)

	// required = 300 + 150 + 100 = 550; threshold 660 > 400.
	compatibility := CheckCompatibility(state)
	if compatibility.IsCompatible {
		t.Fatal("expected PSU warning")
	}
	if len(compatibility.Recommendations) != 1 ||
		!strings.Contains(compatibility.Recommendations[0], "660W") {
		t.Fatalf("expected 660W recommendation, got %v", compatibility.Recommendations)
	}
}

func TestRatioWarningsAreMutuallyExclusive(t *testing.T) {
	t.Run("gpuTooPowerful", func(t *testing.T) {
		cpu := testComponent(enums.CategoryCPU, 50_000)
		gpu := testComponent(enums.CategoryGPU, 200_000)

		compatibility := CheckCompatibility(selectParts(t, NewState(), cpu, gpu))
		if len(compatibility.Warnings) != 1 {
			t.Fatalf("expected exactly one warning, got %v", compatibility.Warnings)
		}
		if !strings.Contains(compatibility.Warnings[0], "Видеокарта") {
			t.Fatalf("expected GPU warning, got %q", compatibility.Warnings[0])
		}
	})

	t.Run("cpuTooPowerful", func(t *testing.T) {
		cpu := testComponent(enums.CategoryCPU, 300_000)
		gpu := testComponent(enums.CategoryGPU, 100_000)

		compatibility := CheckCompatibility(selectParts(t, NewState(), cpu, gpu))
		if len(compatibility.Warnings) != 1 {
			t.Fatalf("expected exactly one warning, got %v", compatibility.Warnings)
		}
		if !strings.Contains(compatibility.Warnings[0], "Процессор") {
			t.Fatalf("expected CPU warning, got %q", compatibility.Warnings[0])
		}
	})
}

func TestRatioWarningNeedsBothParts(t *testing.T) {
	cheapCPU := testComponent(enums.CategoryCPU, 1_000)

	compatibility := CheckCompatibility(selectParts(t, NewState(), cheapCPU))
	if len(compatibility.Warnings) != 0 {
		t.Fatalf("expected no warning without a GPU, got %v", compatibility.Warnings)
	}

	expensiveGPU := testComponent(enums.CategoryGPU, 900_000)
	compatibility = CheckCompatibility(selectParts(t, NewState(), expensiveGPU))
	if len(compatibility.Warnings) != 0 {
		t.Fatalf("expected no warning without a CPU, got %v", compatibility.Warnings)
	}
}

func TestPowerConsumptionSumsParsedSpecs(t *testing.T) {
	cpu := testComponent(enums.CategoryCPU, 185_000)
	cpu.Specs = dbtypes.SpecMap{"power": "125"}
	ram := testComponent(enums.CategoryRAM, 59_000)
	ram.Specs = dbtypes.SpecMap{"power": "15"}
	caseComponent := testComponent(enums.CategoryCase, 30_000)

	analysis := Analyze(selectParts(t, NewState(), cpu, ram, caseComponent))
	if analysis.PowerConsumption != 140 {
		t.Fatalf("expected 140W, got %d", analysis.PowerConsumption)
	}
}

func TestBalanceScorePenalizesPriceSpread(t *testing.T) {
	even := selectParts(t, NewState(),
		testComponent(enums.CategoryCPU, 100_000),
		testComponent(enums.CategoryGPU, 100_000),
	)
	if got := Analyze(even).BalanceScore; got != 100 {
		t.Fatalf("expected identical prices to score 100, got %d", got)
	}

	skewed := selectParts(t, NewState(),
		testComponent(enums.CategoryCPU, 1_000),
		testComponent(enums.CategoryGPU, 900_000),
	)
	if got := Analyze(skewed).BalanceScore; got != 0 {
		t.Fatalf("expected extreme spread to floor at 0, got %d", got)
	}
}

func TestFilteredCatalogSortsByPriceAscending(t *testing.T) {
	a := testComponent(enums.CategoryCPU, 100)
	b := testComponent(enums.CategoryCPU, 50)
	c := testComponent(enums.CategoryCPU, 75)

	state := NewState()
	state, _ = Apply(state, SetCatalog([]Component{a, b, c}))
	sortBy := enums.SortByPrice
	sortOrder := enums.SortAsc
	state, _ = Apply(state, SetFilters(FilterPatch{SortBy: &sortBy, SortOrder: &sortOrder}))

	filtered := FilteredCatalog(state)
	if len(filtered) != 3 {
		t.Fatalf("expected 3 components, got %d", len(filtered))
	}
	if filtered[0].Price != 50 || filtered[1].Price != 75 || filtered[2].Price != 100 {
		t.Fatalf("expected order [50 75 100], got [%d %d %d]",
			filtered[0].Price, filtered[1].Price, filtered[2].Price)
	}
}

func TestFilteredCatalogPredicates(t *testing.T) {
	intel := testComponent(enums.CategoryCPU, 185_000)
	intel.Name = "Intel Core i7-13700K"
	intel.Brand = "Intel"
	intel.Rating = 4.8
	intel.Availability = enums.AvailabilityInStock

	amd := testComponent(enums.CategoryCPU, 162_000)
	amd.Name = "AMD Ryzen 7 7700X"
	amd.Brand = "AMD"
	amd.Rating = 4.7
	amd.Availability = enums.AvailabilityPreOrder

	gpu := testComponent(enums.CategoryGPU, 259_000)
	gpu.Name = "NVIDIA RTX 4070"

	state := NewState()
	state, _ = Apply(state, SetCatalog([]Component{intel, amd, gpu}))

	t.Run("categoryOnly", func(t *testing.T) {
		if got := len(FilteredCatalog(state)); got != 2 {
			t.Fatalf("expected 2 cpus, got %d", got)
		}
	})

	t.Run("searchIsCaseInsensitive", func(t *testing.T) {
		next, _ := Apply(state, SetSearchTerm("ryZEN"))
		filtered := FilteredCatalog(next)
		if len(filtered) != 1 || filtered[0].Brand != "AMD" {
			t.Fatalf("expected only the Ryzen row, got %v", filtered)
		}
	})

	t.Run("brandFilter", func(t *testing.T) {
		brands := []string{"Intel"}
		next, _ := Apply(state, SetFilters(FilterPatch{Brands: &brands}))
		filtered := FilteredCatalog(next)
		if len(filtered) != 1 || filtered[0].Brand != "Intel" {
			t.Fatalf("expected only the Intel row, got %v", filtered)
		}
	})

	t.Run("priceRangeInclusive", func(t *testing.T) {
		priceRange := [2]int{162_000, 185_000}
		next, _ := Apply(state, SetFilters(FilterPatch{PriceRange: &priceRange}))
		if got := len(FilteredCatalog(next)); got != 2 {
			t.Fatalf("expected inclusive bounds to keep both rows, got %d", got)
		}
	})

	t.Run("minRating", func(t *testing.T) {
		minRating := 4.8
		next, _ := Apply(state, SetFilters(FilterPatch{MinRating: &minRating}))
		filtered := FilteredCatalog(next)
		if len(filtered) != 1 || filtered[0].Brand != "Intel" {
			t.Fatalf("expected the 4.8-rated row, got %v", filtered)
		}
	})

	t.Run("availability", func(t *testing.T) {
		availability := []enums.Availability{enums.AvailabilityInStock}
		next, _ := Apply(state, SetFilters(FilterPatch{Availability: &availability}))
		filtered := FilteredCatalog(next)
		if len(filtered) != 1 || filtered[0].Availability != enums.AvailabilityInStock {
			t.Fatalf("expected only stocked rows, got %v", filtered)
		}
	})
}

func TestFilteredCatalogStableOnUnknownKey(t *testing.T) {
	a := testComponent(enums.CategoryCPU, 100)
	a.Popularity = 10
	b := testComponent(enums.CategoryCPU, 50)
	b.Popularity = 90

	state := NewState()
	state, _ = Apply(state, SetCatalog([]Component{a, b}))

	// Default sort is popularity, which compares as equal, so catalog order holds.
	filtered := FilteredCatalog(state)
	if filtered[0].ID != a.ID || filtered[1].ID != b.ID {
		t.Fatal("expected catalog order to be preserved under popularity sort")
	}
}
