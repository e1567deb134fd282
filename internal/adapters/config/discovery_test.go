package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kumade/internal/adapters/config"
	"go.trai.ch/kumade/internal/core/domain"
)

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Kumadefile.yaml"), "tasks: {}\n")
	deep := filepath.Join(root, "pkg", "internal", "src")
	writeFile(t, filepath.Join(deep, "main.go"), "package main")

	t.Run("current directory", func(t *testing.T) {
		path, err := config.Discover(root)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "Kumadefile.yaml"), path)
	})

	t.Run("parent directory", func(t *testing.T) {
		path, err := config.Discover(deep)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "Kumadefile.yaml"), path)
	})

	t.Run("nearest wins", func(t *testing.T) {
		nested := filepath.Join(root, "pkg")
		writeFile(t, filepath.Join(nested, "kumade.yaml"), "tasks: {}\n")

		path, err := config.Discover(deep)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(nested, "kumade.yaml"), path)
	})
}

func TestDiscover_IgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Kumadefile.yaml", "keep"), "")
	writeFile(t, filepath.Join(root, "kumade.yaml"), "tasks: {}\n")

	path, err := config.Discover(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "kumade.yaml"), path)
}

func TestDiscover_NotFound(t *testing.T) {
	_, err := config.Discover(t.TempDir())
	require.ErrorIs(t, err, domain.ErrTaskfileNotFound)
}
