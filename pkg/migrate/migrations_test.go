package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cotizaplus/cotiza-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}

func TestQuoteMigrationCarriesLegacyColumns(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_cotizaciones.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no cotizaciones migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE cotizaciones",
		"recargo_mensual_porcentaje",
		"descuento_manual_porcentaje",
		"iva_porcentaje",
		"cuotas",
		"plazo_meses",
		"modulos_adicionales",
		"DROP TABLE IF EXISTS cotizaciones",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestFinancingPlanMigrationScopesGlobals(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_planes_financiamiento.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no planes_financiamiento migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE planes_financiamiento",
		"company_id         UUID REFERENCES companies (id)",
		"WHERE company_id IS NULL AND status = 'active'",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
