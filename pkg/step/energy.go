package step

import (
	"os"

	"dario.cat/mergo"
	"github.com/rs/zerolog"

	"github.com/molssi-seamm/anistep/pkg/errors"
	"github.com/molssi-seamm/anistep/pkg/molecule"
	"github.com/molssi-seamm/anistep/pkg/schema"
)

// Models the ANI parameterization may name
var KnownModels = []string{"ANI-1x", "ANI-1ccx", "ANI-2x"}

// EnergyParameters control an Energy step. Zero fields take defaults
// when the step is created.
type EnergyParameters struct {
	// Model is the ANI parameterization: ANI-1x, ANI-1ccx or ANI-2x
	Model string

	// Submodel selects which parameterizations of the model to use,
	// "all" averages over every one
	Submodel string

	// Gradients asks the worker for gradients as well as the energy
	Gradients bool
}

// DefaultEnergyParameters returns the defaults for an Energy step
func DefaultEnergyParameters() EnergyParameters {
	return EnergyParameters{
		Model:    "ANI-2x",
		Submodel: "all",
	}
}

// Validate checks the parameters against the known models
func (p EnergyParameters) Validate() error {
	for _, m := range KnownModels {
		if p.Model == m {
			return nil
		}
	}
	return errors.Newf(errors.ErrInvalidInput, "unknown ANI model '%s'", p.Model)
}

// Driver returns the request driver mode the parameters ask for
func (p EnergyParameters) Driver() string {
	if p.Gradients {
		return DriverGradient
	}
	return DriverEnergy
}

// EnergyOptions configure a new Energy step
type EnergyOptions struct {
	// Parameters for the step; zero fields take defaults
	Parameters EnergyParameters

	// Directory is the step's working directory, created during
	// GetInput when non-empty
	Directory string

	// Molecule is the structure the request describes
	Molecule *molecule.Molecule

	// Version is recorded in the request provenance
	Version string

	// Logger for step output
	Logger zerolog.Logger
}

// Energy is the sub-step that asks the worker for an ANI energy (or
// energy plus gradients) of one structure.
type Energy struct {
	parameters EnergyParameters
	directory  string
	molecule   *molecule.Molecule
	version    string
	logger     zerolog.Logger
}

// NewEnergy creates an Energy step, filling parameter defaults and
// validating the result.
func NewEnergy(opts EnergyOptions) (*Energy, error) {
	p := opts.Parameters
	if err := mergo.Merge(&p, DefaultEnergyParameters()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "merging energy parameter defaults")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &Energy{
		parameters: p,
		directory:  opts.Directory,
		molecule:   opts.Molecule,
		version:    opts.Version,
		logger:     opts.Logger,
	}, nil
}

// Title returns the step's display name
func (e *Energy) Title() string {
	return "Energy"
}

// Parameters returns the step's resolved parameters
func (e *Energy) Parameters() EnergyParameters {
	return e.parameters
}

// GetInput writes the energy request into the document: envelope
// fields, driver, model, keywords, provenance and the molecule.
func (e *Energy) GetInput(doc *schema.Document) error {
	if e.directory != "" {
		if err := os.MkdirAll(e.directory, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "creating step directory %s", e.directory)
		}
	}

	if e.molecule == nil {
		return errors.New(errors.ErrRequestBuild, "energy step has no molecule")
	}
	if err := e.molecule.Validate(); err != nil {
		return err
	}

	doc.Set(schema.KeySchemaName, schema.String(schema.InputSchemaName))
	doc.Set(schema.KeySchemaVersion, schema.Int(schema.InputSchemaVersion))
	doc.Set("driver", schema.String(e.parameters.Driver()))

	model := schema.NewMap()
	model.Set("method", schema.String("ML"))
	model.Set("model", schema.String("ANI"))
	model.Set("parameterization", schema.String(e.parameters.Model))
	doc.Set("model", schema.FromMap(model))

	keywords := schema.NewMap()
	keywords.Set("submodel", schema.String(e.parameters.Submodel))
	doc.Set("keywords", schema.FromMap(keywords))

	provenance := schema.NewMap()
	provenance.Set("creator", schema.String("SEAMM/anistep"))
	provenance.Set("version", schema.String(e.version))
	provenance.Set("routine", schema.String("step.Energy.GetInput"))
	doc.Set("provenance", schema.FromMap(provenance))

	doc.Set("molecule", e.molecule.ToValue())

	e.logger.Debug().
		Str("driver", e.parameters.Driver()).
		Str("model", e.parameters.Model).
		Str("submodel", e.parameters.Submodel).
		Msg("Energy step added to request")

	return nil
}

// Analyze reads this step's record of the response payload and reports
// the returned energy. The worker decides what the record holds, so
// absent keys are tolerated.
func (e *Energy) Analyze(payload *schema.Document, stepIndex int) error {
	record, ok := Record(payload, stepIndex)
	if !ok {
		return errors.Newf(errors.ErrStepAnalyze, "no workflow record for step %d", stepIndex+1)
	}

	energy, haveEnergy := record.GetFloat("energy")
	if !haveEnergy {
		e.logger.Debug().Int("step", stepIndex+1).Msg("No energy in workflow record")
		return nil
	}

	event := e.logger.Info().
		Int("step", stepIndex+1).
		Float64("energy", energy)

	if gradient, ok := record.GetList("gradient"); ok {
		event = event.Int("gradient_components", len(gradient))
	}
	event.Msgf("Energy step %d complete", stepIndex+1)

	return nil
}
