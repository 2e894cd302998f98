package fixture

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed fixture.schema.json
var schemaJSON []byte

const schemaURL = "fixture.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
	})
	return schema, schemaErr
}

// Validate checks a decoded document against the fixture schema. doc is
// round-tripped through JSON so any value json.Marshal accepts can be
// checked.
func Validate(doc any) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("schema compilation error: %w", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}

	if err := s.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			l := leaf(ve)
			return &SchemaError{Location: l.InstanceLocation, Message: l.Message}
		}
		return fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}
	return nil
}

// SchemaError reports where a document violates the fixture schema.
type SchemaError struct {
	// Location is a JSON pointer into the document.
	Location string
	Message  string
}

func (e *SchemaError) Error() string {
	loc := e.Location
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("invalid fixture at %s: %s", loc, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidFixture.
func (e *SchemaError) Unwrap() error { return ErrInvalidFixture }

// leaf follows the first cause chain to the most specific failure.
func leaf(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}
	return err
}
