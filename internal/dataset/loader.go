package dataset

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

//go:embed northwind.yaml
var defaultDocument []byte

// EmbeddedSource names the built-in dataset in errors and logs.
const EmbeddedSource = "<embedded>"

// document is the on-disk shape of a dataset file.
type document struct {
	Products  []Product  `yaml:"products"`
	Customers []Customer `yaml:"customers"`
}

// LoadFile reads and loads a dataset document from path.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithHint(
			&LoadError{Code: ErrCodeRead, Source: path, Message: "cannot read dataset file", Err: err},
			"check the --dataset flag or the dataset key in qsamples.toml",
		)
	}
	return Load(path, data)
}

// Load validates data against the dataset schema, decodes it and checks the
// structural invariants. source is used in error messages only.
//
// Loading happens in three passes and stops at the first failing one:
//  1. the raw YAML is unified with the CUE #Dataset definition
//  2. the YAML is decoded with unknown fields rejected
//  3. New enforces id uniqueness and order ownership
func Load(source string, data []byte) (*Dataset, error) {
	if err := validateSchema(source, data); err != nil {
		return nil, err
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.WithHint(
			&LoadError{Code: ErrCodeDecode, Source: source, Message: "cannot decode dataset", Err: err},
			"amounts must be plain decimals and dates must be quoted YYYY-MM-DD strings",
		)
	}

	ds, err := New(doc.Customers, doc.Products)
	if err != nil {
		return nil, withSource(err, source)
	}
	return ds, nil
}

var (
	defaultOnce    sync.Once
	defaultDataset *Dataset
)

// Default returns the embedded sample dataset (a slice of Northwind).
// It panics if the embedded document is invalid, which the package tests rule out.
func Default() *Dataset {
	defaultOnce.Do(func() {
		ds, err := Load(EmbeddedSource, defaultDocument)
		if err != nil {
			panic(errors.Wrap(err, "embedded dataset"))
		}
		defaultDataset = ds
	})
	return defaultDataset
}

// DefaultDocument returns a copy of the embedded YAML document.
func DefaultDocument() []byte {
	return bytes.Clone(defaultDocument)
}

// validateSchema unifies the raw document with #Dataset.
func validateSchema(source string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return errors.Wrap(err, "compile dataset schema")
	}
	def := schema.LookupPath(cue.ParsePath("#Dataset"))

	file, err := cueyaml.Extract(source, data)
	if err != nil {
		return errors.WithHint(
			&LoadError{Code: ErrCodeDecode, Source: source, Message: "malformed YAML", Err: err},
			"the dataset must be a YAML mapping with products and customers lists",
		)
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return &LoadError{Code: ErrCodeDecode, Source: source, Message: "malformed YAML", Err: err}
	}
	// An empty document extracts as null and describes an empty dataset.
	if doc.Kind() == cue.NullKind {
		return nil
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return errors.WithHint(
			&LoadError{Code: ErrCodeSchema, Source: source, Message: "schema violation", Err: errors.New(cueerrors.Details(err, nil))},
			"compare the document against the format in the dataset package docs",
		)
	}
	return nil
}
