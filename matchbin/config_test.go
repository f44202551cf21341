package matchbin

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigs_Valid(t *testing.T) {
	assert.NoError(t, DefaultRankedConfig().Validate())
	assert.NoError(t, DefaultRouletteConfig().Validate())
	assert.NoError(t, DefaultExpRouletteConfig().Validate())
}

func TestConfigValidate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantField string
		wantErr   error
	}{
		{"ranked default_n", RankedConfig{Threshold: Unbounded}.Validate(), "default_n", ErrInvalidDefaultN},
		{"ranked NaN threshold", RankedConfig{Threshold: Bound(math.NaN()), DefaultN: 1}.Validate(), "threshold", ErrInvalidBound},
		{"roulette zero skew", withSkew(0).Validate(), "skew", ErrInvalidSkew},
		{"roulette infinite skew", withSkew(math.Inf(1)).Validate(), "skew", ErrInvalidSkew},
		{"roulette NaN skew", withSkew(math.NaN()).Validate(), "skew", ErrInvalidSkew},
		{"exp base one", withExp(func(c *ExpRouletteConfig) { c.B = 1 }).Validate(), "b", ErrInvalidBase},
		{"exp negative base", withExp(func(c *ExpRouletteConfig) { c.B = -0.5 }).Validate(), "b", ErrInvalidBase},
		{"exp zero c", withExp(func(c *ExpRouletteConfig) { c.C = 0 }).Validate(), "c", ErrInvalidExponent},
		{"exp zero z", withExp(func(c *ExpRouletteConfig) { c.Z = 0 }).Validate(), "z", ErrInvalidExponent},
		{"exp NaN cap", withExp(func(c *ExpRouletteConfig) { c.MaxBaseline = Bound(math.NaN()) }).Validate(), "max_baseline", ErrInvalidBound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.ErrorIs(t, tt.err, tt.wantErr)
			var verr *ConfigValidationError
			require.True(t, errors.As(tt.err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func withSkew(skew float64) RouletteConfig {
	cfg := DefaultRouletteConfig()
	cfg.Skew = skew
	return cfg
}

func withExp(mut func(*ExpRouletteConfig)) ExpRouletteConfig {
	cfg := DefaultExpRouletteConfig()
	mut(&cfg)
	return cfg
}

func TestConfigValidationError_Message(t *testing.T) {
	err := withSkew(-1).Validate()
	assert.EqualError(t, err, "roulette selector: skew: skew must be a finite number greater than 0")
}

func TestBound_Admits(t *testing.T) {
	assert.True(t, Unbounded.Admits(1e308))
	assert.True(t, Unbounded.Admits(-5))
	assert.False(t, Unbounded.Admits(math.Inf(1)))
	assert.False(t, Unbounded.Admits(math.Inf(-1)))
	assert.True(t, Bound(0.5).Admits(0.5))
	assert.False(t, Bound(0.5).Admits(0.50001))
	assert.True(t, Bound(-1).Admits(-2))
}

func TestBound_String(t *testing.T) {
	assert.Equal(t, "+Inf", Unbounded.String())
	assert.Equal(t, "1.3", Bound(1.3).String())
	assert.True(t, Unbounded.IsUnbounded())
	assert.False(t, Bound(1e308).IsUnbounded())
}
