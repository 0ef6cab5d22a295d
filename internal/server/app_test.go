package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/employeeboard/internal/server/config"
	"github.com/dmitrijs2005/employeeboard/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_InMemory(t *testing.T) {
	cfg := &config.Config{EndpointAddr: "127.0.0.1:0", ShutdownTimeout: time.Second}

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &repomanager.MemoryRepositoryManager{}, app.repomanager)
}

func TestNewApp_OpenError(t *testing.T) {
	orig := openRepositories
	openRepositories = func(context.Context, string) (repomanager.RepositoryManager, error) {
		return nil, errors.New("refused")
	}
	defer func() { openRepositories = orig }()

	_, err := NewApp(context.Background(), &config.Config{DatabaseDSN: "postgres://x"})
	require.ErrorContains(t, err, "db init error: refused")
}

type failingMigrations struct {
	*repomanager.MemoryRepositoryManager
	closed bool
}

func (f *failingMigrations) RunMigrations(context.Context) error { return errors.New("bad migration") }
func (f *failingMigrations) Close() error                        { f.closed = true; return nil }

func TestNewApp_MigrationErrorClosesStorage(t *testing.T) {
	fm := &failingMigrations{MemoryRepositoryManager: repomanager.NewMemoryRepositoryManager()}
	orig := openRepositories
	openRepositories = func(context.Context, string) (repomanager.RepositoryManager, error) { return fm, nil }
	defer func() { openRepositories = orig }()

	_, err := NewApp(context.Background(), &config.Config{DatabaseDSN: "postgres://x"})
	require.ErrorContains(t, err, "migrations error")
	assert.True(t, fm.closed)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), &config.Config{EndpointAddr: "127.0.0.1:0", ShutdownTimeout: time.Second})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}
