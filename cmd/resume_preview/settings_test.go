package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-preview/internal/config"
	"github.com/jonathan/resume-preview/internal/measure"
)

func TestLoadInputs_BuiltinTemplate(t *testing.T) {
	cfg := config.Config{Template: "modern", Data: validDataPath}

	schema, data, err := loadInputs(cfg)
	require.NoError(t, err)
	assert.Equal(t, "modern", schema.ID)
	assert.Equal(t, "Jordan Rivera", data.PersonalInfo.FullName)
}

func TestLoadInputs_SchemaFileOverridesTemplate(t *testing.T) {
	cfg := config.Config{Template: "modern", Schema: validSchemaPath, Data: validDataPath}

	schema, _, err := loadInputs(cfg)
	require.NoError(t, err)
	assert.Equal(t, "two-column-example", schema.ID)
}

func TestLoadInputs_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{"missing data", config.Config{Template: "classic"}, "--data is required"},
		{"unknown template", config.Config{Template: "baroque", Data: validDataPath}, "unknown template"},
		{"invalid data", config.Config{Template: "classic", Data: invalidDataPath}, "failed to load resume data"},
		{"missing schema file", config.Config{Schema: "nope.json", Data: validDataPath}, "failed to load template schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := loadInputs(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("MEASURE_SURFACE", "estimate")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_PASSWORD", "secret")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("PORT", "9090")

	d := envDefaults()
	assert.Equal(t, "estimate", d.Surface)
	assert.Equal(t, "localhost:6379", d.RedisAddr)
	assert.Equal(t, "secret", d.RedisPassword)
	assert.Equal(t, 2, d.RedisDB)
	assert.Equal(t, 9090, d.Port)
}

func TestEnvDefaults_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("REDIS_DB", "two")
	t.Setenv("PORT", "")

	d := envDefaults()
	assert.Zero(t, d.RedisDB)
	assert.Zero(t, d.Port)
}

func TestNewSurface_Estimate(t *testing.T) {
	surface, cleanup := newSurface(t.Context(), config.Config{Surface: config.SurfaceEstimate})
	defer cleanup()
	assert.IsType(t, measure.EstimateSurface{}, surface)
}

func TestNewEngine_MemoryFallback(t *testing.T) {
	cfg := config.Config{Surface: config.SurfaceEstimate}
	cfg = cfg.MergeWithDefaults(config.Config{})

	engine, cleanup := newEngine(t.Context(), cfg, true)
	defer cleanup()
	assert.NotNil(t, engine.Cache)
	assert.Equal(t, "estimate", engine.SurfaceName)
	assert.Equal(t, float64(config.DefaultDisplayWidth), engine.DisplayWidth)

	engine, cleanup = newEngine(t.Context(), cfg, false)
	defer cleanup()
	assert.Nil(t, engine.Cache)
}

func TestWriteOutput_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.html")

	require.NoError(t, writeOutput(path, []byte("<p>hi</p>")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(content))
}

func TestPaginationGeometry(t *testing.T) {
	geom, err := paginationGeometry(config.Config{DisplayWidth: 297.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, geom.Scale, 1e-9)

	_, err = paginationGeometry(config.Config{})
	assert.ErrorContains(t, err, "invalid display width")
}
