package registry

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"aihub/internal/app/errors"
	"aihub/internal/app/model"
)

// Registry answers which models exist for a capability and whether their
// local artifacts are already present. It never downloads anything.
type Registry interface {
	// AvailableModels returns the known definitions for a capability.
	AvailableModels(capability model.Capability) []model.Definition

	// DownloadPath returns the local artifact path for a model,
	// regardless of whether the artifact exists yet.
	DownloadPath(def model.Definition) string

	// IsDownloaded reports whether the model artifact is present locally.
	IsDownloaded(def model.Definition) bool
}

// catalogFile mirrors the on-disk models.yaml layout.
type catalogFile struct {
	Models []model.Definition `yaml:"models"`
}

// CatalogRegistry is a Registry backed by a YAML catalog file and a
// models directory holding downloaded artifacts.
type CatalogRegistry struct {
	models    []model.Definition
	modelsDir string
}

// NewCatalogRegistry parses the catalog at catalogPath and resolves
// artifacts relative to modelsDir.
func NewCatalogRegistry(catalogPath, modelsDir string) (*CatalogRegistry, error) {
	data, err := os.ReadFile(catalogPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read model catalog %s", catalogPath)
	}
	return ParseCatalog(data, modelsDir)
}

// ParseCatalog builds a registry from raw catalog bytes.
func ParseCatalog(data []byte, modelsDir string) (*CatalogRegistry, error) {
	var catalog catalogFile
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Wrap(err, "failed to parse model catalog")
	}

	for _, def := range catalog.Models {
		if def.ID == "" {
			return nil, errors.New("model catalog entry is missing an id")
		}
		if !def.Capability.Valid() {
			return nil, errors.Newf("model %s has unknown capability %q", def.ID, def.Capability)
		}
	}

	ids := lo.Map(catalog.Models, func(def model.Definition, _ int) string { return def.ID })
	if len(lo.Uniq(ids)) != len(ids) {
		return nil, errors.New("model catalog contains duplicate ids")
	}

	return &CatalogRegistry{models: catalog.Models, modelsDir: modelsDir}, nil
}

// AvailableModels returns every catalog entry matching the capability.
func (r *CatalogRegistry) AvailableModels(capability model.Capability) []model.Definition {
	return lo.Filter(r.models, func(def model.Definition, _ int) bool {
		return def.Capability == capability
	})
}

// DownloadPath resolves the artifact path for a model.
func (r *CatalogRegistry) DownloadPath(def model.Definition) string {
	return filepath.Join(r.modelsDir, def.ID+".bin")
}

// IsDownloaded checks artifact presence on disk.
func (r *CatalogRegistry) IsDownloaded(def model.Definition) bool {
	info, err := os.Stat(r.DownloadPath(def))
	return err == nil && !info.IsDir()
}

// FindModel looks a definition up by id across all capabilities.
func (r *CatalogRegistry) FindModel(id string) (model.Definition, bool) {
	return lo.Find(r.models, func(def model.Definition) bool { return def.ID == id })
}
