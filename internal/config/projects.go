// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package config

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/cartoproxy/internal/models"
)

// Registry lookup errors.
var (
	ErrRepositoryNotFound = errors.New("repository not found")
	ErrProjectNotFound    = errors.New("project not found")
)

// Registry is the read-only repository/project catalogue the mediation
// layer resolves requests against. Loaded once at startup; safe for
// unsynchronized concurrent reads. Managing repositories and projects
// belongs to an external configuration subsystem, not to this layer.
type Registry struct {
	repositories map[string]*models.Repository
	projects     map[string]map[string]*models.Project
}

// registryFile is the YAML shape of the projects file.
type registryFile struct {
	Repositories []models.Repository `koanf:"repositories"`
	Projects     []models.Project    `koanf:"projects"`
}

// LoadRegistry reads the repository/project registry from a YAML file.
func LoadRegistry(path string) (*Registry, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load projects file %s: %w", path, err)
	}

	var rf registryFile
	if err := k.Unmarshal("", &rf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal projects file: %w", err)
	}

	return NewRegistry(rf.Repositories, rf.Projects)
}

// NewRegistry builds a Registry from already-parsed entities,
// verifying that every project references a declared repository and
// that keys are unique.
func NewRegistry(repositories []models.Repository, projects []models.Project) (*Registry, error) {
	r := &Registry{
		repositories: make(map[string]*models.Repository, len(repositories)),
		projects:     make(map[string]map[string]*models.Project),
	}

	for i := range repositories {
		repo := &repositories[i]
		if repo.Key == "" {
			return nil, fmt.Errorf("repository %d has an empty key", i)
		}
		if _, dup := r.repositories[repo.Key]; dup {
			return nil, fmt.Errorf("duplicate repository key %q", repo.Key)
		}
		r.repositories[repo.Key] = repo
		r.projects[repo.Key] = make(map[string]*models.Project)
	}

	for i := range projects {
		proj := &projects[i]
		if proj.Key == "" {
			return nil, fmt.Errorf("project %d has an empty key", i)
		}
		byKey, ok := r.projects[proj.RepositoryKey]
		if !ok {
			return nil, fmt.Errorf("project %q references unknown repository %q", proj.Key, proj.RepositoryKey)
		}
		if _, dup := byKey[proj.Key]; dup {
			return nil, fmt.Errorf("duplicate project key %q in repository %q", proj.Key, proj.RepositoryKey)
		}
		byKey[proj.Key] = proj
	}

	return r, nil
}

// Repository resolves a repository by key.
func (r *Registry) Repository(key string) (*models.Repository, error) {
	repo, ok := r.repositories[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRepositoryNotFound, key)
	}
	return repo, nil
}

// Project resolves a project by repository and project key.
func (r *Registry) Project(repositoryKey, projectKey string) (*models.Project, error) {
	byKey, ok := r.projects[repositoryKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRepositoryNotFound, repositoryKey)
	}
	proj, ok := byKey[projectKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q/%q", ErrProjectNotFound, repositoryKey, projectKey)
	}
	return proj, nil
}

// RepositoryCount returns the number of registered repositories.
func (r *Registry) RepositoryCount() int {
	return len(r.repositories)
}
