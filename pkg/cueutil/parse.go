// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pelletier/go-toml/v2"
)

// Load builds a value from data in format, unifies it with the schemaPath
// definition of schema and validates the result.
func Load(schema []byte, schemaPath string, data []byte, format Format, opts ...Option) (cue.Value, error) {
	o := applyOptions(opts)
	if err := CheckFileSize(data, o.maxFileSize, o.displayName()); err != nil {
		return cue.Value{}, err
	}

	ctx := cuecontext.New()
	var user cue.Value
	switch format {
	case FormatCUE, FormatJSON:
		user = ctx.CompileBytes(data, cue.Filename(o.displayName()))
	case FormatTOML:
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return cue.Value{}, fmt.Errorf("%s: %w", o.displayName(), err)
		}
		user = ctx.Encode(doc)
	default:
		return cue.Value{}, fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
	return Unify(ctx, schema, user, schemaPath, opts...)
}

// Unify validates an already built user value against the schemaPath
// definition of schema. The schema is compiled in ctx, which must be the
// context userValue belongs to.
func Unify(ctx *cue.Context, schema []byte, userValue cue.Value, schemaPath string, opts ...Option) (cue.Value, error) {
	o := applyOptions(opts)

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	def := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if def.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, def.Err())
	}

	if err := userValue.Err(); err != nil {
		return cue.Value{}, NewValidationError(err, o.displayName())
	}
	unified := def.Unify(userValue)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return cue.Value{}, NewValidationError(err, o.displayName())
	}
	return unified, nil
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
