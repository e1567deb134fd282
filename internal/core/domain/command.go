package domain

// Command is an external process invocation.
type Command struct {
	Args []string
	// Dir is the working directory. Empty means the current process directory.
	Dir string
	// Env overrides the inherited process environment.
	Env map[string]string
}
