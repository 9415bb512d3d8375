package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/mattcl/confpiler/pkg/logger"
	"github.com/mattcl/confpiler/pkg/source"
)

type discoverer struct {
	fs  afero.Fs
	log logger.Logger
}

// NewDiscoverer returns a Discoverer reading from fs.
func NewDiscoverer(fs afero.Fs, log logger.Logger) Discoverer {
	if log == nil {
		log = logger.Nop()
	}
	return &discoverer{
		fs:  fs,
		log: log,
	}
}

// Resolve implements Discoverer.
func (d *discoverer) Resolve(paths []string, opts Options) ([]string, error) {
	defaultName := opts.Default
	if defaultName == "" {
		defaultName = DefaultName
	}

	var sources []string
	for _, path := range paths {
		info, err := d.fs.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, &PathNotFoundError{Path: path}
			}
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if !info.IsDir() {
			d.log.WithFields(logger.Fields{
				"path": path,
			}).Debug("Adding file source")

			sources = append(sources, path)
			continue
		}

		sources = append(sources, filepath.Join(path, defaultName))

		if opts.Environment == "" {
			continue
		}

		ok, err := d.hasEnvironment(path, opts.Environment)
		if err != nil {
			return nil, err
		}

		if !ok {
			d.log.WithFields(logger.Fields{
				"dir":         path,
				"environment": opts.Environment,
			}).Debug("Environment not present, skipping")
			continue
		}

		sources = append(sources, filepath.Join(path, opts.Environment))
	}

	d.log.WithFields(logger.Fields{
		"paths":   len(paths),
		"sources": sources,
	}).Debug("Resolved sources")

	return sources, nil
}

func (d *discoverer) hasEnvironment(dir, env string) (bool, error) {
	if info, err := d.fs.Stat(filepath.Join(dir, env)); err == nil && info.Mode().IsRegular() {
		return true, nil
	}

	entries, err := afero.ReadDir(d.fs, dir)
	if err != nil {
		return false, fmt.Errorf("read dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.Mode().IsRegular() && stem(entry.Name()) == env {
			return true, nil
		}
	}
	return false, nil
}

// Environments implements Discoverer. Only files with a supported config
// extension are considered.
func (d *discoverer) Environments(dir, defaultName string) ([]string, error) {
	info, err := d.fs.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &PathNotFoundError{Path: dir}
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	if defaultName == "" {
		defaultName = DefaultName
	}
	defaultStem := stem(defaultName)

	entries, err := afero.ReadDir(d.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var envs []string
	for _, entry := range entries {
		if !entry.Mode().IsRegular() || !supported(entry.Name()) {
			continue
		}

		name := stem(entry.Name())
		if name == defaultStem || slices.Contains(envs, name) {
			continue
		}
		envs = append(envs, name)
	}

	slices.Sort(envs)
	return envs, nil
}

// AllEnvironments implements Discoverer. File paths are ignored.
func (d *discoverer) AllEnvironments(paths []string, defaultName string) ([]string, error) {
	var all []string
	for _, path := range paths {
		info, err := d.fs.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, &PathNotFoundError{Path: path}
			}
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			continue
		}

		envs, err := d.Environments(path, defaultName)
		if err != nil {
			return nil, err
		}
		all = append(all, envs...)
	}

	slices.Sort(all)
	return slices.Compact(all), nil
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func supported(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	return slices.Contains(source.Extensions, ext)
}
