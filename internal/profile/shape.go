package profile

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/profile.schema.json
var shapeSchemaJSON string

var (
	shapeOnce   sync.Once
	shapeSchema *jsonschema.Schema
	shapeErr    error
)

func compiledShape() (*jsonschema.Schema, error) {
	shapeOnce.Do(func() {
		shapeSchema, shapeErr = jsonschema.CompileString("profile.schema.json", shapeSchemaJSON)
	})
	return shapeSchema, shapeErr
}

// CheckShape validates the minimal recognisable profile shape: an object
// with a player character carrying an Info record.
func CheckShape(v any) error {
	s, err := compiledShape()
	if err != nil {
		return fmt.Errorf("compile profile schema: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrNotProfile, err)
	}
	return nil
}
