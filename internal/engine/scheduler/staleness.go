package scheduler

import (
	"time"

	"go.trai.ch/kumade/internal/core/domain"
	"go.trai.ch/kumade/internal/core/ports"
)

// StalenessPolicy decides whether a file task must be rebuilt.
// It only uses existence and modification times, queried fresh on every call.
type StalenessPolicy struct {
	fs ports.FileSystem
}

// NewStalenessPolicy creates a StalenessPolicy over the given file system.
func NewStalenessPolicy(fs ports.FileSystem) *StalenessPolicy {
	return &StalenessPolicy{fs: fs}
}

// IsStale reports whether task needs its action run.
//
// Action tasks are always stale. A file task is stale when its target is missing, or when any
// file dependency target or existing source is strictly newer than the target. Action
// dependencies never make a file task stale. A file dependency whose target is missing also
// counts as newer, since its freshness cannot be proven.
//
// Directories carry no useful timestamp: their mtime moves whenever an entry is added. An existing
// directory target is always fresh, and directory dependencies or sources are skipped.
func (p *StalenessPolicy) IsStale(registry *domain.Registry, task *domain.Task) (bool, error) {
	if !task.IsFileProduct() {
		return true, nil
	}

	target := task.TargetPath.String()
	exists, err := p.fs.Exists(target)
	if err != nil {
		return false, err
	}
	if !exists {
		return true, nil
	}

	if len(task.Dependencies) == 0 && len(task.Sources) == 0 {
		return false, nil
	}

	isDir, err := p.fs.IsDir(target)
	if err != nil || isDir {
		return false, err
	}

	targetTime, err := p.fs.LastModified(target)
	if err != nil {
		return false, err
	}

	for _, name := range task.Dependencies {
		dep, err := registry.Lookup(name.String())
		if err != nil {
			return false, err
		}
		if !dep.IsFileProduct() {
			continue
		}
		newer, err := p.newerThan(dep.TargetPath.String(), targetTime, true)
		if err != nil || newer {
			return newer, err
		}
	}

	for _, source := range task.Sources {
		newer, err := p.newerThan(source.String(), targetTime, false)
		if err != nil || newer {
			return newer, err
		}
	}

	return false, nil
}

// newerThan reports whether path was modified strictly after ref.
// missingIsNewer decides the answer for a path that does not exist. Directories are never newer.
func (p *StalenessPolicy) newerThan(path string, ref time.Time, missingIsNewer bool) (bool, error) {
	exists, err := p.fs.Exists(path)
	if err != nil {
		return false, err
	}
	if !exists {
		return missingIsNewer, nil
	}

	isDir, err := p.fs.IsDir(path)
	if err != nil || isDir {
		return false, err
	}

	modified, err := p.fs.LastModified(path)
	if err != nil {
		return false, err
	}
	return modified.After(ref), nil
}
