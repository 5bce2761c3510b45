package storage

import "testing"

func TestNewStoreMemory(t *testing.T) {
	for _, kind := range []string{"", "memory"} {
		store, err := NewStore(kind, "")
		if err != nil {
			t.Fatalf("kind %q: %v", kind, err)
		}
		if _, ok := store.(*MemoryStore); !ok {
			t.Fatalf("kind %q: got %T", kind, store)
		}
	}
}

func TestNewStoreUnknownKind(t *testing.T) {
	if _, err := NewStore("postgres", ""); err == nil {
		t.Fatal("expected error for unsupported backend")
	}
}

func TestCloseIfSupportedIgnoresMemoryStore(t *testing.T) {
	if err := CloseIfSupported(NewMemoryStore()); err != nil {
		t.Fatalf("close: %v", err)
	}
}
