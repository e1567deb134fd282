package config

// Kumadefile represents the structure of the Kumadefile.yaml task file.
type Kumadefile struct {
	Default string                   `yaml:"default"`
	Config  map[string]ConfigItemDTO `yaml:"config"`
	Tasks   map[string]TaskDTO       `yaml:"tasks"`
}

// ConfigItemDTO represents a config item definition in the task file.
type ConfigItemDTO struct {
	Default string `yaml:"default"`
	Help    string `yaml:"help"`
}

// TaskDTO represents a task definition in the task file.
//
// File, Directory and Clean are mutually exclusive. File and Directory make the task a file
// task; everything else is an action task.
type TaskDTO struct {
	Help      string            `yaml:"help"`
	Deps      []string          `yaml:"deps"`
	Cmd       []string          `yaml:"cmd"`
	File      string            `yaml:"file"`
	Sources   []string          `yaml:"sources"`
	Directory string            `yaml:"directory"`
	Clean     []string          `yaml:"clean"`
	Env       map[string]string `yaml:"env"`
}
