package domain

// Project is everything loaded from one task file for a single invocation.
type Project struct {
	// Path is the absolute path of the task file.
	Path string
	// Dir is the directory relative paths and commands resolve against.
	Dir string

	Tasks  *Registry
	Config *ConfigRegistry
	// Values are the confirmed config values, defaults merged with overrides.
	Values map[string]string
}
