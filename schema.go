package remoteui

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const descriptorSchemaURL = "https://remoteui.schemas.local/descriptor.schema.json"

//go:embed schema/descriptor.schema.json
var descriptorSchemaJSON []byte

var (
	descriptorSchemaOnce sync.Once
	descriptorSchema     *jsonschema.Schema
	descriptorSchemaErr  error
)

// DescriptorSchema returns the compiled JSON Schema that descriptor payloads
// are checked against when decoding with WithSchemaValidation.
func DescriptorSchema() (*jsonschema.Schema, error) {
	descriptorSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(descriptorSchemaURL, bytes.NewReader(descriptorSchemaJSON)); err != nil {
			descriptorSchemaErr = fmt.Errorf("remoteui: descriptor schema load failed: %w", err)
			return
		}
		descriptorSchema, descriptorSchemaErr = c.Compile(descriptorSchemaURL)
		if descriptorSchemaErr != nil {
			descriptorSchemaErr = fmt.Errorf("remoteui: descriptor schema compile failed: %w", descriptorSchemaErr)
		}
	})
	return descriptorSchema, descriptorSchemaErr
}

func validateDescriptorPayload(payload map[string]any) error {
	schema, err := DescriptorSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("remoteui: descriptor schema validation failed: %w", err)
	}
	return nil
}
