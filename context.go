// Copyright 2026 The Attrinfer Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package attrinfer

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// Context is the per-block runtime scope passed to every user-supplied
// candidates/canonicalize/prefer/score function. It exposes the entity
// instance, the declared helpers by name, and — for source-level blocks
// only — the memoized dataset value the source is bound to.
//
// Go has no open classes, so a Context cannot splice helper names directly
// into the call's lexical scope the way the reference host's blocks do;
// instead helpers are invoked through Call, and Entity forwards attribute
// lookups explicitly. Design Notes in spec.md anticipate exactly this
// shape: "pass it explicitly as the first argument to compiled block
// callables, or use a small expression-evaluator object exposing helpers as
// methods."
type Context[E any] struct {
	entity  E
	helpers map[string]Helper[E]
	dataset any
}

// Entity returns the entity instance this context was built for.
func (c *Context[E]) Entity() E { return c.entity }

// Dataset returns the memoized dataset value for the source this context
// belongs to. It is the zero value of any (nil) in field-level contexts,
// which have no single bound dataset.
func (c *Context[E]) Dataset() any { return c.dataset }

// Call invokes a helper registered under name, forwarding this context so
// the helper can itself call other helpers or read Dataset/Entity.
func (c *Context[E]) Call(name string, args ...any) (any, error) {
	fn, ok := c.helpers[name]
	if !ok {
		return nil, fmt.Errorf("attrinfer: unknown helper %q", name)
	}
	return fn(c, args...)
}

// Helper is a named callable injected into every user block's Context.
type Helper[E any] func(ctx *Context[E], args ...any) (any, error)

// DatasetProducer computes the opaque, queryable value for a dataset when
// invoked in the evaluation context of one entity instance.
type DatasetProducer[E any] func(ctx *Context[E]) (any, error)

// Candidates produces the finite, ordered sequence of raw candidate values
// for one source.
type Candidates[E any] func(ctx *Context[E]) ([]any, error)

// Canonicalize reduces a raw candidate (or, at the field level, an
// ungrouped representative) to a comparable grouping key.
type Canonicalize[E any] func(ctx *Context[E], raw any) (any, error)

// Prefer chooses a representative value for an equivalence class, given its
// canonical key and its raw members in producer order.
type Prefer[E any] func(ctx *Context[E], key any, raws []any) (any, error)

// Score assigns a non-negative confidence score to a source's preferred
// representative, given its raw members.
type Score[E any] func(ctx *Context[E], representative any, raws []any) (float64, error)

// shareHelper returns a Helper that forwards to the entity's exported field
// or zero-argument, single-return method matching attr, converted from
// snake_case to the Go-exported CamelCase spelling share's Ruby original
// assumes attr accessors use.
func shareHelper[E any](attr string) Helper[E] {
	exported := exportedName(attr)
	return func(ctx *Context[E], _ ...any) (any, error) {
		rv := reflect.ValueOf(ctx.entity)
		if m := rv.MethodByName(exported); m.IsValid() {
			if m.Type().NumIn() != 0 || m.Type().NumOut() != 1 {
				return nil, fmt.Errorf("attrinfer: share(%q): method %s must take no arguments and return one value", attr, exported)
			}
			return m.Call(nil)[0].Interface(), nil
		}
		sv := rv
		if sv.Kind() == reflect.Ptr {
			sv = sv.Elem()
		}
		if sv.Kind() == reflect.Struct {
			if f := sv.FieldByName(exported); f.IsValid() {
				return f.Interface(), nil
			}
		}
		return nil, fmt.Errorf("attrinfer: share(%q): entity has no field or method %s", attr, exported)
	}
}

func exportedName(attr string) string {
	parts := strings.Split(attr, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}
