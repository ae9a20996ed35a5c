// Package molecule provides a thin molecular-structure model: enough
// to read an XYZ file and serialize the structure into a request
// document. It does no chemistry of its own.
package molecule

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/molssi-seamm/anistep/pkg/errors"
	"github.com/molssi-seamm/anistep/pkg/schema"
)

// BohrPerAngstrom converts XYZ coordinates (angstrom) to the bohr
// geometry the request document carries.
const BohrPerAngstrom = 1.8897261254578281

// Molecule is a minimal molecular structure. Geometry is a flat
// [x0, y0, z0, x1, ...] slice in bohr.
type Molecule struct {
	Name         string
	Charge       int64
	Multiplicity int64
	Symbols      []string
	Geometry     []float64
}

// NAtoms returns the number of atoms
func (m *Molecule) NAtoms() int {
	return len(m.Symbols)
}

// Validate checks the internal consistency of the structure
func (m *Molecule) Validate() error {
	if len(m.Symbols) == 0 {
		return errors.New(errors.ErrMoleculeParse, "molecule has no atoms")
	}
	if len(m.Geometry) != 3*len(m.Symbols) {
		return errors.Newf(errors.ErrMoleculeParse,
			"molecule has %d atoms but %d coordinates", len(m.Symbols), len(m.Geometry))
	}
	if m.Multiplicity < 1 {
		return errors.Newf(errors.ErrMoleculeParse, "invalid multiplicity %d", m.Multiplicity)
	}
	return nil
}

// ToValue serializes the structure as the QCSchema-style molecule map
// of a request document.
func (m *Molecule) ToValue() *schema.Value {
	out := schema.NewMap()
	out.Set("symbols", schema.StringList(m.Symbols))
	out.Set("geometry", schema.FloatList(m.Geometry))
	out.Set("molecular_charge", schema.Int(m.Charge))
	out.Set("molecular_multiplicity", schema.Int(m.Multiplicity))
	if m.Name != "" {
		out.Set("name", schema.String(m.Name))
	}
	return schema.FromMap(out)
}

// ReadXYZ loads a molecule from an XYZ file. Coordinates convert from
// angstrom to bohr. The comment line may carry "charge=N" and
// "multiplicity=M" tokens; whatever remains becomes the name, falling
// back to the file name.
func ReadXYZ(path string) (*Molecule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read XYZ file %s", path)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseXYZ(data, name)
}

// ParseXYZ parses XYZ-format text. fallbackName is used when the
// comment line carries no name of its own.
func ParseXYZ(data []byte, fallbackName string) (*Molecule, error) {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return nil, errors.New(errors.ErrMoleculeParse, "XYZ data is too short")
	}

	count, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return nil, errors.Newf(errors.ErrMoleculeParse,
			"first XYZ line is not an atom count: '%s'", strings.TrimSpace(lines[0]))
	}
	if count <= 0 {
		return nil, errors.Newf(errors.ErrMoleculeParse, "XYZ atom count %d is not positive", count)
	}
	if len(lines) < 2+count {
		return nil, errors.Newf(errors.ErrMoleculeParse,
			"XYZ data has %d atom lines, expected %d", len(lines)-2, count)
	}

	mol := &Molecule{
		Charge:       0,
		Multiplicity: 1,
		Symbols:      make([]string, 0, count),
		Geometry:     make([]float64, 0, 3*count),
	}
	mol.Name = parseComment(lines[1], mol)
	if mol.Name == "" {
		mol.Name = fallbackName
	}

	for i := 0; i < count; i++ {
		line := strings.TrimSpace(lines[2+i])
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, errors.Newf(errors.ErrMoleculeParse, "malformed XYZ atom line: '%s'", line)
		}

		mol.Symbols = append(mol.Symbols, fields[0])
		for _, f := range fields[1:4] {
			coord, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, errors.Newf(errors.ErrMoleculeParse, "invalid coordinate '%s' in line '%s'", f, line)
			}
			mol.Geometry = append(mol.Geometry, coord*BohrPerAngstrom)
		}
	}

	return mol, nil
}

// parseComment pulls charge= and multiplicity= tokens out of the XYZ
// comment line, returning what is left as the name.
func parseComment(line string, mol *Molecule) string {
	var rest []string
	for _, field := range strings.Fields(line) {
		switch {
		case strings.HasPrefix(field, "charge="):
			if v, err := strconv.ParseInt(strings.TrimPrefix(field, "charge="), 10, 64); err == nil {
				mol.Charge = v
				continue
			}
		case strings.HasPrefix(field, "multiplicity="):
			if v, err := strconv.ParseInt(strings.TrimPrefix(field, "multiplicity="), 10, 64); err == nil {
				mol.Multiplicity = v
				continue
			}
		}
		rest = append(rest, field)
	}
	return strings.Join(rest, " ")
}
