// Package schemas provides JSON Schema validation for documents crossing the storage boundary.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resume-builder/internal/types"
	files "github.com/jonathan/resume-builder/schemas"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Fields returns the failing field paths in order.
func (ve *ValidationError) Fields() []string {
	out := make([]string, len(ve.Errors))
	for i, e := range ve.Errors {
		out[i] = e.Field
	}
	return out
}

type compiled struct {
	once   sync.Once
	name   string
	schema *gojsonschema.Schema
	err    error
}

func (c *compiled) get() (*gojsonschema.Schema, error) {
	c.once.Do(func() {
		raw, err := files.Files.ReadFile(c.name)
		if err != nil {
			c.err = &SchemaLoadError{Path: c.name, Message: "schema not embedded", Cause: err}
			return
		}
		c.schema, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			c.err = &SchemaLoadError{Path: c.name, Message: "invalid schema", Cause: err}
		}
	})
	return c.schema, c.err
}

var (
	resumeSchema   = &compiled{name: files.Resume}
	settingsSchema = &compiled{name: files.Settings}
)

// ValidateResumeJSON validates a raw resume document against the embedded schema.
func ValidateResumeJSON(raw []byte) error {
	return validateWith(resumeSchema, raw)
}

// ValidateResume validates a decoded resume by its JSON form.
func ValidateResume(data *types.ResumeData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}
	return ValidateResumeJSON(raw)
}

// ValidateSettingsJSON validates a raw settings document against the embedded schema.
func ValidateSettingsJSON(raw []byte) error {
	return validateWith(settingsSchema, raw)
}

// DecodeResume validates raw against the resume schema and decodes it.
func DecodeResume(raw []byte) (*types.ResumeData, error) {
	if err := ValidateResumeJSON(raw); err != nil {
		return nil, err
	}
	var data types.ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode resume: %w", err)
	}
	return &data, nil
}

// LoadResumeFile reads, validates and decodes a resume JSON file.
func LoadResumeFile(path string) (*types.ResumeData, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve JSON path: %w", err)
	}
	raw, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("JSON file not found: %s", absPath)
		}
		return nil, fmt.Errorf("failed to read %s: %w", absPath, err)
	}
	return DecodeResume(raw)
}

func validateWith(c *compiled, raw []byte) error {
	schema, err := c.get()
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}
	return toValidationError(result)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return toValidationError(result)
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
