package migrations

import (
	"testing"
	"testing/fstest"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name   string
		want   int
		wantOK bool
	}{
		{name: "V1__init.sql", want: 1, wantOK: true},
		{name: "V12__add_surveys.sql", want: 12, wantOK: true},
		{name: "init.sql"},
		{name: "Vx__bad.sql"},
		{name: "V3.sql"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseVersion(tt.name)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("ParseVersion(%q) = %d, %v", tt.name, got, ok)
			}
		})
	}
}

func TestListMigrationsOrdersNumerically(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/V10__later.sql": {Data: []byte("SELECT 1")},
		"sql/V2__second.sql": {Data: []byte("SELECT 1")},
		"sql/V1__init.sql":   {Data: []byte("SELECT 1")},
		"sql/README.md":      {Data: []byte("ignored")},
	}
	migs, err := listMigrations(fsys, "sql")
	if err != nil {
		t.Fatalf("listMigrations: %v", err)
	}
	want := []string{"V1__init.sql", "V2__second.sql", "V10__later.sql"}
	if len(migs) != len(want) {
		t.Fatalf("got %d migrations", len(migs))
	}
	for i, name := range want {
		if migs[i].Name != name {
			t.Errorf("migs[%d] = %s, want %s", i, migs[i].Name, name)
		}
	}
}

func TestEmbeddedMigrationsAreWellFormed(t *testing.T) {
	migs, err := listMigrations(embedded, "sql")
	if err != nil {
		t.Fatalf("embedded migrations: %v", err)
	}
	if len(migs) == 0 || migs[0].Version != 1 {
		t.Fatalf("expected V1 migration first, got %+v", migs)
	}
}
