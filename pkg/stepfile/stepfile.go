// Package stepfile loads the TOML or YAML file describing one
// anistep run and turns it into the ordered step nodes.
package stepfile

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/molssi-seamm/anistep/pkg/errors"
	"github.com/molssi-seamm/anistep/pkg/molecule"
	"github.com/molssi-seamm/anistep/pkg/step"
)

// DefaultFileName is what anistep init writes
const DefaultFileName = "anistep.toml"

// EnvPrefix marks environment variables that override step file keys,
// e.g. ANISTEP_EXECUTOR.
const EnvPrefix = "ANISTEP_"

// StepSpec is one [[steps]] entry
type StepSpec struct {
	Type      string `koanf:"type" toml:"type"`
	Model     string `koanf:"model" toml:"model"`
	Submodel  string `koanf:"submodel" toml:"submodel"`
	Gradients bool   `koanf:"gradients" toml:"gradients"`
}

// File is one decoded step file
type File struct {
	Title     string     `koanf:"title" toml:"title"`
	Executor  string     `koanf:"executor" toml:"executor"`
	Directory string     `koanf:"directory" toml:"directory"`
	Molecule  string     `koanf:"molecule" toml:"molecule"`
	Steps     []StepSpec `koanf:"steps" toml:"steps"`

	baseDir string
}

// NodeOptions configure the nodes built from a step file
type NodeOptions struct {
	// Directory is the run directory; each step gets a numbered
	// subdirectory under it when non-empty
	Directory string

	// Version recorded in request provenance
	Version string

	// Logger passed to each node
	Logger zerolog.Logger
}

// Load reads a step file, applies ANISTEP_ environment overrides and
// validates the result. The format follows the file extension.
func Load(path string) (*File, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrFileNotFound, "step file %s does not exist", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "reading step file %s", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "parsing step file %s", path)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "applying environment overrides")
	}

	f := &File{}
	if err := k.Unmarshal("", f); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "decoding step file %s", path)
	}
	f.baseDir = filepath.Dir(path)
	if f.Title == "" {
		f.Title = "TorchANI"
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigInvalid,
			"step file %s is neither TOML nor YAML", path)
	}
}

// Validate checks the step types against the registered builders and
// that any steps have a molecule to work on.
func (f *File) Validate() error {
	for i, s := range f.Steps {
		switch {
		case s.Type == "":
			return errors.Newf(errors.ErrConfigInvalid, "step %d has no type", i+1)
		case !step.Known(s.Type):
			return errors.Newf(errors.ErrConfigInvalid, "unknown step type '%s'", s.Type).
				WithDetail("available", step.Types())
		}
	}
	if len(f.Steps) > 0 && f.Molecule == "" {
		return errors.New(errors.ErrConfigInvalid, "step file names no molecule")
	}
	return nil
}

// Nodes builds the run's step nodes in file order. The molecule is
// read once and shared.
func (f *File) Nodes(opts NodeOptions) ([]step.Node, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var mol *molecule.Molecule
	if f.Molecule != "" {
		var err error
		mol, err = molecule.ReadXYZ(f.MoleculePath())
		if err != nil {
			return nil, err
		}
	}

	nodes := make([]step.Node, 0, len(f.Steps))
	for i, spec := range f.Steps {
		directory := ""
		if opts.Directory != "" {
			directory = filepath.Join(opts.Directory, strconv.Itoa(i+1))
		}

		node, err := step.Build(step.Spec{
			Type:      spec.Type,
			Model:     spec.Model,
			Submodel:  spec.Submodel,
			Gradients: spec.Gradients,
		}, step.Context{
			Directory: directory,
			Molecule:  mol,
			Version:   opts.Version,
			Logger:    opts.Logger,
		})
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// MoleculePath resolves the molecule file against the step file's
// directory.
func (f *File) MoleculePath() string {
	if f.Molecule == "" || filepath.IsAbs(f.Molecule) || f.baseDir == "" {
		return f.Molecule
	}
	return filepath.Join(f.baseDir, f.Molecule)
}

// Starter is the example step file anistep init writes
func Starter() *File {
	return &File{
		Title:     "TorchANI energy",
		Executor:  "local",
		Directory: "torchani",
		Molecule:  "molecule.xyz",
		Steps: []StepSpec{{
			Type:     step.TypeEnergy,
			Model:    "ANI-2x",
			Submodel: "all",
		}},
	}
}

// WriteStarter writes the example step file, refusing to overwrite an
// existing one.
func WriteStarter(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf(errors.ErrFileWrite, "%s already exists", path)
	}

	data, err := gotoml.Marshal(Starter())
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "encoding starter step file")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "writing %s", path)
	}
	return nil
}
