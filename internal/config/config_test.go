package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_DatabasePool(t *testing.T) {
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "3")

	cfg, err := NewConfig()

	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, []string{"purchase", "offsite_conversion.fb_pixel_purchase"}, cfg.Meta.ConversionTypes)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Google:    Google{ChunkDays: 30},
		Meta:      Meta{ChunkDays: 7},
		Naver:     Naver{StatsBatchSize: 100},
		JobRunner: JobRunner{BatchSize: 0},
	}

	assert.ErrorContains(t, cfg.Validate(), "JOB_RUNNER_BATCH_SIZE")

	cfg.JobRunner.BatchSize = 5
	assert.NoError(t, cfg.Validate())
}
