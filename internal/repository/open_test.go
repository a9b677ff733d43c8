package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"eventcrm/config"
	"eventcrm/internal/domain"
	"eventcrm/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProvisioner struct {
	got []string
	err error
}

func (p *recordingProvisioner) EnsureCollections(_ context.Context, collections ...string) error {
	p.got = collections
	return p.err
}

func TestOpen_Memory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	b, err := Open(context.Background(), &config.Config{StoreBackend: config.StoreMemory}, logger)
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, b.Store)
	assert.Nil(t, b.Provisioner)
	assert.NoError(t, b.Provision(context.Background()))
	assert.NoError(t, b.Close())
}

func TestOpen_DynamoDB(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{StoreBackend: config.StoreDynamoDB}
	cfg.DynamoDB.Region = "us-east-1"
	cfg.DynamoDB.Endpoint = "http://localhost:8000"

	b, err := Open(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.NotNil(t, b.Store)
	assert.NotNil(t, b.Provisioner)
}

func TestOpen_UnknownBackend(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := Open(context.Background(), &config.Config{StoreBackend: "mongodb"}, logger)
	require.Error(t, err)
}

func TestBackend_Provision(t *testing.T) {
	p := &recordingProvisioner{}
	b := &Backend{Store: memory.NewStore(), Provisioner: p}
	require.NoError(t, b.Provision(context.Background()))
	assert.Equal(t, []string{domain.CollectionUsers, domain.CollectionEvents, domain.CollectionEmailLogs}, p.got)

	p.err = errors.New("boom")
	assert.Error(t, b.Provision(context.Background()))
}
