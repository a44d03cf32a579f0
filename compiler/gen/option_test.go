package gen

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	c, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultIndent, c.Indent)
	assert.Equal(t, DefaultPackage, c.Package)
	assert.Equal(t, DefaultHeader, c.Header)
	assert.False(t, c.ExportedFields)
	assert.Nil(t, c.Logger)
	assert.NotNil(t, c.logger())
}

func TestWithIndent(t *testing.T) {
	tests := []struct {
		name    string
		indent  string
		wantErr bool
	}{
		{"two spaces", "  ", false},
		{"tab", "\t", false},
		{"mixed", " \t", false},
		{"empty", "", true},
		{"letters", "ab", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithIndent(tt.indent)(c)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.indent, c.Indent)
			}
		})
	}
}

func TestWithPackage(t *testing.T) {
	t.Run("sets package", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithPackage("models")(c))
		assert.Equal(t, "models", c.Package)
	})

	t.Run("empty package returns error", func(t *testing.T) {
		err := WithPackage("")(&Config{})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("invalid identifier returns error", func(t *testing.T) {
		err := WithPackage("my-models")(&Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "my-models")
	})
}

func TestWithHeader(t *testing.T) {
	t.Run("sets header", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithHeader("Custom header")(c))
		assert.Equal(t, "Custom header", c.Header)
	})

	t.Run("empty header is allowed", func(t *testing.T) {
		c := &Config{Header: "existing"}
		require.NoError(t, WithHeader("")(c))
		assert.Equal(t, "", c.Header)
	})
}

func TestWithLogger(t *testing.T) {
	t.Run("sets logger", func(t *testing.T) {
		var buf bytes.Buffer
		l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		c := &Config{}
		require.NoError(t, WithLogger(l)(c))
		c.logger().Debug("hello")
		assert.Contains(t, buf.String(), "hello")
	})

	t.Run("nil logger returns error", func(t *testing.T) {
		err := WithLogger(nil)(&Config{})
		assert.True(t, IsConfigError(err))
	})
}

func TestConfigApply(t *testing.T) {
	t.Run("stops at first error", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(WithPackage(""), WithIndent("\t"))
		require.Error(t, err)
		assert.Empty(t, c.Indent)
	})

	t.Run("ApplyAll collects errors", func(t *testing.T) {
		c := &Config{}
		err := c.ApplyAll(WithPackage(""), WithIndent(""), WithExportedFields())
		require.Error(t, err)
		assert.True(t, c.ExportedFields)
		var cerr *ConfigError
		require.True(t, errors.As(err, &cerr))
		assert.Contains(t, err.Error(), "Package")
		assert.Contains(t, err.Error(), "Indent")
	})

	t.Run("MustNewConfig panics on error", func(t *testing.T) {
		assert.Panics(t, func() { MustNewConfig(WithIndent("x")) })
		assert.NotPanics(t, func() { MustNewConfig(WithIndent("\t")) })
	})
}
