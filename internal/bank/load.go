package bank

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var bankYAML []byte

//go:embed bank.schema.json
var bankSchema []byte

const schemaURL = "schema://question-bank.json"

// def is the package-level bank built from the embedded data at init.
var def *Bank

func init() {
	b, err := Parse(bankYAML)
	if err == nil {
		err = validateCoverage(b.questions)
	}
	if err != nil {
		panic(fmt.Sprintf("embedded question bank is invalid: %v", err))
	}
	def = b
}

// Default returns the embedded question bank.
func Default() *Bank {
	return def
}

// document is the on-disk shape of a bank file.
type document struct {
	Version   string     `yaml:"version"`
	Questions []Question `yaml:"questions"`
}

// Parse decodes, schema-checks and validates a YAML bank document.
func Parse(data []byte) (*Bank, error) {
	if err := checkSchema(data); err != nil {
		return nil, err
	}
	doc, err := decode(data)
	if err != nil {
		return nil, err
	}
	return New(doc.Version, doc.Questions)
}

// Load reads a bank file from disk. Unlike Parse it also requires the bank
// to cover every specificity level.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank %s: %w", path, err)
	}
	b, err := Parse(data)
	if err == nil {
		err = validateCoverage(b.questions)
	}
	if err != nil {
		return nil, fmt.Errorf("load bank %s: %w", path, err)
	}
	return b, nil
}

// Marshal renders a bank back into its YAML document form.
func Marshal(b *Bank) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(document{Version: b.version, Questions: b.questions}); err != nil {
		return nil, fmt.Errorf("encode bank: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode bank: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(data []byte) (document, error) {
	var doc document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return document{}, fmt.Errorf("parse bank: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return document{}, fmt.Errorf("parse bank: multiple YAML documents are not supported")
		}
		return document{}, fmt.Errorf("parse bank: %w", err)
	}
	return doc, nil
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(bankSchema))
	if err != nil {
		return nil, fmt.Errorf("parse bank schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, parsed); err != nil {
		return nil, fmt.Errorf("add bank schema: %w", err)
	}
	return c.Compile(schemaURL)
})

// checkSchema validates the raw YAML document against the bank JSON Schema.
// YAML is re-encoded as JSON so numbers reach the validator as json.Number.
func checkSchema(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse bank: %w", err)
	}
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("convert bank to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(asJSON))
	if err != nil {
		return fmt.Errorf("convert bank to JSON: %w", err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("bank schema validation failed: %w", err)
	}
	return nil
}
