package step

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/molssi-seamm/anistep/pkg/errors"
	"github.com/molssi-seamm/anistep/pkg/molecule"
	"github.com/molssi-seamm/anistep/pkg/registry"
)

// TypeEnergy names the built-in energy step
const TypeEnergy = "energy"

// Spec describes one requested step before it is built. Fields beyond
// Type are interpreted by the step's builder.
type Spec struct {
	Type      string
	Model     string
	Submodel  string
	Gradients bool
}

// Context carries run-wide settings into step builders
type Context struct {
	// Directory is the step's working directory, may be empty
	Directory string

	// Molecule is the structure the run describes
	Molecule *molecule.Molecule

	// Version recorded in request provenance
	Version string

	// Logger passed to the node
	Logger zerolog.Logger
}

// Builder turns a spec into a runnable node
type Builder func(Spec, Context) (Node, error)

var builders = registry.New[Builder]()

func init() {
	registry.MustRegister(builders, TypeEnergy, buildEnergy)
}

func buildEnergy(spec Spec, ctx Context) (Node, error) {
	return NewEnergy(EnergyOptions{
		Parameters: EnergyParameters{
			Model:     spec.Model,
			Submodel:  spec.Submodel,
			Gradients: spec.Gradients,
		},
		Directory: ctx.Directory,
		Molecule:  ctx.Molecule,
		Version:   ctx.Version,
		Logger:    ctx.Logger,
	})
}

// RegisterBuilder adds a step type under name. Names are matched
// case-insensitively.
func RegisterBuilder(name string, b Builder) error {
	return builders.Register(strings.ToLower(name), b)
}

// Known reports whether name is a registered step type
func Known(name string) bool {
	return builders.Has(strings.ToLower(name))
}

// Types returns the registered step type names, sorted
func Types() []string {
	return builders.List()
}

// Build constructs the node for a spec through its registered builder
func Build(spec Spec, ctx Context) (Node, error) {
	b, err := builders.Get(strings.ToLower(spec.Type))
	if err != nil {
		return nil, errors.Newf(errors.ErrConfigInvalid, "unknown step type '%s'", spec.Type).
			WithDetail("available", Types())
	}
	return b(spec, ctx)
}
