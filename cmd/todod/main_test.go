package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/todod/internal/config"
	"github.com/sandeepkv93/todod/internal/storage"
)

func TestOpenStoreBackends(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range []string{config.StoreSQLite, config.StoreFile, config.StoreMemory} {
		cfg := config.DefaultRuntimeConfig()
		cfg.Store = backend
		cfg.DBPath = filepath.Join(dir, "todod.db")
		cfg.StateFilePath = filepath.Join(dir, "state.json")

		store, closer, err := openStore(cfg)
		if err != nil {
			t.Fatalf("open %s store: %v", backend, err)
		}
		if err := store.Set(context.Background(), storage.TodosKey, "[]"); err != nil {
			t.Fatalf("%s set: %v", backend, err)
		}
		got, ok, err := store.Get(context.Background(), storage.TodosKey)
		if err != nil || !ok || got != "[]" {
			t.Fatalf("%s get = %q %v %v", backend, got, ok, err)
		}
		if err := closer.Close(); err != nil {
			t.Fatalf("%s close: %v", backend, err)
		}
	}
}

func TestOpenStoreUnknownBackend(t *testing.T) {
	cfg := config.DefaultRuntimeConfig()
	cfg.Store = "redis"
	if _, _, err := openStore(cfg); !errors.Is(err, config.ErrUnknownStore) {
		t.Fatalf("expected ErrUnknownStore, got %v", err)
	}
}
