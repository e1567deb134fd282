package domain

import (
	"iter"
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// ConfigItem is a named setting that the task file declares and the command line may override.
type ConfigItem struct {
	Name    string
	Default string
	Help    string
}

// ConfigRegistry holds the config items declared by a task file, in declaration order.
type ConfigRegistry struct {
	items map[string]ConfigItem
	order []string
}

// NewConfigRegistry creates a new empty ConfigRegistry.
func NewConfigRegistry() *ConfigRegistry {
	return &ConfigRegistry{items: make(map[string]ConfigItem)}
}

// Add declares a config item.
func (c *ConfigRegistry) Add(item ConfigItem) error {
	if item.Name == "" {
		return zerr.Wrap(ErrInvalidTask, "config item name must not be empty")
	}
	if _, exists := c.items[item.Name]; exists {
		return zerr.With(zerr.Wrap(ErrConfigItemExists, ""), "item", item.Name)
	}
	c.items[item.Name] = item
	c.order = append(c.order, item.Name)
	return nil
}

// Items yields the declared items in declaration order.
func (c *ConfigRegistry) Items() iter.Seq[ConfigItem] {
	return func(yield func(ConfigItem) bool) {
		for _, name := range c.order {
			if !yield(c.items[name]) {
				return
			}
		}
	}
}

// Len returns the number of declared items.
func (c *ConfigRegistry) Len() int {
	return len(c.order)
}

// Confirm merges overrides onto the declared defaults.
// Every override must name a declared item.
func (c *ConfigRegistry) Confirm(overrides map[string]string) (map[string]string, error) {
	for _, name := range slices.Sorted(maps.Keys(overrides)) {
		if _, ok := c.items[name]; !ok {
			return nil, zerr.With(zerr.Wrap(ErrUnknownConfigItem, ""), "item", name)
		}
	}

	values := make(map[string]string, len(c.items))
	for name, item := range c.items {
		values[name] = item.Default
	}
	maps.Copy(values, overrides)
	return values, nil
}
