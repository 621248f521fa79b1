// Package content loads game manifests and room files into the world model.
// Every document is validated against its JSON Schema before it is decoded.
package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/samdwyer/tiled/internal/errors"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// Schema names one of the embedded document schemas.
type Schema string

// Embedded schemas
const (
	SchemaManifest Schema = "manifest"
	SchemaRoom     Schema = "room"
	SchemaAssets   Schema = "assets"
)

var (
	compileOnce sync.Once
	compiled    map[Schema]*jsonschema.Schema
	compileErr  error
)

func schemaFor(s Schema) (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = make(map[Schema]*jsonschema.Schema)
		for _, name := range []Schema{SchemaManifest, SchemaRoom, SchemaAssets} {
			file := fmt.Sprintf("schemas/%s.schema.json", name)
			src, err := schemaFS.ReadFile(file)
			if err != nil {
				compileErr = err
				return
			}
			sch, err := jsonschema.CompileString("mem:///"+file, string(src))
			if err != nil {
				compileErr = fmt.Errorf("compile %s: %w", file, err)
				return
			}
			compiled[name] = sch
		}
	})
	if compileErr != nil {
		return nil, compileErr
	}
	sch, ok := compiled[s]
	if !ok {
		return nil, errors.InvalidArgumentf("unknown schema %q", s)
	}
	return sch, nil
}

// Validate checks raw JSON against the schema.
func Validate(s Schema, data []byte) error {
	sch, err := schemaFor(s)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidContent, "malformed JSON")
	}
	if err := sch.Validate(doc); err != nil {
		return errors.WrapWithCodef(err, errors.CodeInvalidContent, "does not match %s schema", s)
	}
	return nil
}

// Decode reads name from fsys, validates it and unmarshals it into a T.
func Decode[T any](fsys fs.FS, name string, s Schema) (T, error) {
	var result T

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return result, errors.WrapWithCodef(err, errors.CodeNotFound, "failed to read %s", name)
	}
	if err := Validate(s, data); err != nil {
		return result, errors.Wrapf(err, "%s", name)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, errors.WrapWithCodef(err, errors.CodeInvalidContent, "failed to parse JSON from %s", name)
	}
	return result, nil
}
