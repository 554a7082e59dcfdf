package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateDirAcceptsBundledMigrations(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("bundled migrations failed validation: %v", err)
	}
}

func TestBuildComponentsMigrationEnforcesSlotUniqueness(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_build_components.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("no build_components migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS build_components",
		"FOREIGN KEY (build_id) REFERENCES builds(id) ON DELETE CASCADE",
		"CHECK (quantity >= 1)",
		"ON build_components (build_id, category)",
		"DROP TABLE IF EXISTS build_components",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestSeedMigrationCoversEveryStockedCategory(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_seed_components.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("no seed migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	for _, category := range []string{"'cpu'", "'gpu'", "'ram'", "'storage'", "'psu'"} {
		if !strings.Contains(content, category) {
			t.Errorf("seed migration missing category %s", category)
		}
	}
}
