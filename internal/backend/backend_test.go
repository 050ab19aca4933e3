package backend

import (
	"path/filepath"
	"testing"
)

func TestBackendTypeIsValid(t *testing.T) {
	for _, bt := range []BackendType{CSVBackend, SQLiteBackend, MemoryBackend} {
		if !bt.IsValid() {
			t.Fatalf("%s should be valid", bt)
		}
	}
	if BackendType("postgres").IsValid() {
		t.Fatal("postgres should not be valid")
	}
}

func TestFactoryCreate(t *testing.T) {
	tmp := t.TempDir()
	factory := NewFactory(nil)

	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"csv", Config{Type: CSVBackend, CSVPath: filepath.Join(tmp, "expenses.csv")}, false},
		{"memory", Config{Type: MemoryBackend}, false},
		{"csv missing path", Config{Type: CSVBackend}, true},
		{"sqlite missing path", Config{Type: SQLiteBackend}, true},
		{"unknown type", Config{Type: "redis"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := factory.Create(tt.config)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Store == nil {
				t.Fatal("nil store")
			}
			if res.Cleanup != nil {
				if err := res.Cleanup(); err != nil {
					t.Fatalf("cleanup: %v", err)
				}
			}
		})
	}
}
