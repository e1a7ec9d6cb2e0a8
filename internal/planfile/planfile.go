// Package planfile reads plan inputs and cost-table overrides from YAML or
// JSON files.
package planfile

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/feasibility-cli/internal/cost"
	"github.com/sells-group/feasibility-cli/internal/model"
)

// Format is a file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from a file extension. Anything that is not
// .json is read as YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Load reads one plan from path.
func Load(path string) (model.PlanInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.PlanInput{}, eris.Wrapf(err, "planfile: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	p, err := Decode(f, FormatOf(path))
	if err != nil {
		return model.PlanInput{}, eris.Wrapf(err, "planfile: %s", path)
	}
	return p, nil
}

// Decode reads one plan from r. Unknown keys are rejected.
func Decode(r io.Reader, format Format) (model.PlanInput, error) {
	var p model.PlanInput
	if err := decodeStrict(r, format, &p); err != nil {
		return model.PlanInput{}, err
	}
	return p, nil
}

// LoadTables reads cost-table overrides from path on top of the defaults and
// validates the result. Map entries not named in the file keep their
// default values.
func LoadTables(path string) (cost.Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cost.Tables{}, eris.Wrapf(err, "planfile: read tables %s", path)
	}

	t := cost.DefaultTables()
	if err := decodeStrict(bytes.NewReader(data), FormatOf(path), &t); err != nil {
		return cost.Tables{}, eris.Wrapf(err, "planfile: tables %s", path)
	}
	if err := cost.ValidateTables(t); err != nil {
		return cost.Tables{}, err
	}
	return t, nil
}

func decodeStrict(r io.Reader, format Format, out any) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(out); err != nil {
			return eris.Wrap(err, "decode json")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(out); err != nil {
			if err == io.EOF {
				return eris.New("decode yaml: empty document")
			}
			return eris.Wrap(err, "decode yaml")
		}
	default:
		return eris.Errorf("unknown format %q", format)
	}
	return nil
}
