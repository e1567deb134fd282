package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kumade/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestConfigRegistry_Confirm(t *testing.T) {
	c := domain.NewConfigRegistry()
	require.NoError(t, c.Add(domain.ConfigItem{Name: "mode", Default: "debug", Help: "Build mode."}))
	require.NoError(t, c.Add(domain.ConfigItem{Name: "arch", Default: "amd64"}))

	values, err := c.Confirm(map[string]string{"mode": "release"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"mode": "release", "arch": "amd64"}, values)

	values, err = c.Confirm(nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", values["mode"])
}

func TestConfigRegistry_UnknownOverride(t *testing.T) {
	c := domain.NewConfigRegistry()
	require.NoError(t, c.Add(domain.ConfigItem{Name: "mode"}))

	_, err := c.Confirm(map[string]string{"mode": "x", "colour": "red"})
	require.ErrorIs(t, err, domain.ErrUnknownConfigItem)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "colour", zErr.Metadata()["item"])
}

func TestConfigRegistry_Add(t *testing.T) {
	c := domain.NewConfigRegistry()
	require.NoError(t, c.Add(domain.ConfigItem{Name: "b"}))
	require.NoError(t, c.Add(domain.ConfigItem{Name: "a"}))

	assert.ErrorIs(t, c.Add(domain.ConfigItem{Name: "a"}), domain.ErrConfigItemExists)
	assert.Error(t, c.Add(domain.ConfigItem{}))
	assert.Equal(t, 2, c.Len())

	var order []string
	for item := range c.Items() {
		order = append(order, item.Name)
	}
	assert.Equal(t, []string{"b", "a"}, order)
}
