package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/itemscrape/internal/config"
	"github.com/law-makers/itemscrape/internal/utils/output"
	"github.com/law-makers/itemscrape/pkg/models"
)

func TestNew(t *testing.T) {
	cfg := config.Default()
	cfg.Format = "json"
	cfg.Workers = 3

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close(context.Background())

	assert.Equal(t, output.FormatJSON, a.Format)
	assert.NotNil(t, a.Dispatcher)
	assert.NotNil(t, a.Cache)
	assert.NotNil(t, a.Metrics)
	assert.Equal(t, 3, a.Runner().Concurrency())

	rec, err := a.Dispatcher.ExtractHTML(`<html><head><title>x tmall.com</title></head></html>`)
	require.NoError(t, err)
	assert.Equal(t, models.PlatformTmall, rec.Platform)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(context.Background(), nil)
	assert.Error(t, err)

	cfg := config.Default()
	cfg.Format = "xml"
	_, err = New(context.Background(), cfg)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.CacheSize = 0
	_, err = New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestServeMetrics(t *testing.T) {
	a, err := New(context.Background(), config.Default())
	require.NoError(t, err)

	require.NoError(t, a.ServeMetrics(""))
	assert.Nil(t, a.metricsServer)

	require.NoError(t, a.ServeMetrics("127.0.0.1:0"))
	assert.NotNil(t, a.metricsServer)

	assert.NoError(t, a.Close(context.Background()))
	assert.Nil(t, a.metricsServer)
}
