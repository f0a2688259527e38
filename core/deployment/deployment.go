package deployment

import (
	"fmt"

	"component-loader/core/component"
	"component-loader/core/loader"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Package names a component package resolved through the search path.
type Package struct {
	Name string `mapstructure:"name"`
	Path string `mapstructure:"path"`
}

// Instance names a component instance to create.
type Instance struct {
	Name string `mapstructure:"name"`
	Type string `mapstructure:"type"`
}

// Deployment describes the libraries to load and the components to create.
type Deployment struct {
	// Imports are path lists scanned with ImportAll.
	Imports []string `mapstructure:"imports"`
	// Packages are imported by name.
	Packages []Package `mapstructure:"packages"`
	// Components are created in order once every library is loaded.
	Components []Instance `mapstructure:"components"`
}

// Target is the loader surface a deployment drives.
type Target interface {
	ImportAll(pathList string) *loader.ImportResult
	ImportPackage(packageName, pathList string) error
	Instantiate(name, typeName string) (component.Component, error)
	Destroy(c component.Component) error
}

// Load reads a deployment file. The format follows the file extension (yaml, json, toml).
func Load(path string) (*Deployment, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read deployment %s: %w", path, err)
	}
	var d Deployment
	if err := v.Unmarshal(&d); err != nil {
		return nil, fmt.Errorf("failed to decode deployment %s: %w", path, err)
	}
	return &d, nil
}

// Applied records what Apply did so it can be torn down.
type Applied struct {
	// Loaded lists the library files loaded by imports.
	Loaded []string
	// Skipped collects files the imports could not load.
	Skipped []error
	// Components are the created components in creation order.
	Components []component.Component
}

// Apply imports the libraries and creates the components of d.
// Import scans never fail; a missing package or a failed instantiation does,
// after destroying the components this call already created.
func (d *Deployment) Apply(t Target, logger *zap.Logger) (*Applied, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	applied := &Applied{}

	for _, pathList := range d.Imports {
		res := t.ImportAll(pathList)
		applied.Loaded = append(applied.Loaded, res.Loaded...)
		applied.Skipped = append(applied.Skipped, res.Failures...)
		logger.Info("Imported path", zap.String("path", pathList), zap.Int("loaded", len(res.Loaded)))
	}

	for _, pkg := range d.Packages {
		if err := t.ImportPackage(pkg.Name, pkg.Path); err != nil {
			return applied, d.rollback(t, applied, fmt.Errorf("package %s: %w", pkg.Name, err), logger)
		}
		logger.Info("Imported package", zap.String("package", pkg.Name))
	}

	for _, inst := range d.Components {
		c, err := t.Instantiate(inst.Name, inst.Type)
		if err != nil {
			return applied, d.rollback(t, applied, fmt.Errorf("component %s: %w", inst.Name, err), logger)
		}
		applied.Components = append(applied.Components, c)
	}
	logger.Info("Deployment applied", zap.Int("components", len(applied.Components)))
	return applied, nil
}

func (d *Deployment) rollback(t Target, applied *Applied, cause error, logger *zap.Logger) error {
	logger.Error("Deployment failed, rolling back", zap.Error(cause))
	var result *multierror.Error
	result = multierror.Append(result, cause)
	if err := applied.Teardown(t); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// Teardown destroys the created components in reverse creation order.
// Libraries stay loaded.
func (a *Applied) Teardown(t Target) error {
	var result *multierror.Error
	for i := len(a.Components) - 1; i >= 0; i-- {
		if err := t.Destroy(a.Components[i]); err != nil {
			result = multierror.Append(result, err)
		}
	}
	a.Components = nil
	return result.ErrorOrNil()
}
