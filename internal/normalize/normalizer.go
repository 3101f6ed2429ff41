// SPDX-License-Identifier: MPL-2.0

package normalize

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/invowk/iconsprite/internal/issue"
)

type (
	// Plan is the ordered pass list handed to an Engine.
	Plan struct {
		// Base passes run first and are always present.
		Base []Pass
		// Additional passes run after the base set.
		Additional []Pass
	}

	// Engine executes a Plan against one document. It is the seam for
	// plugging in an external optimizer.
	Engine interface {
		Optimize(ctx context.Context, markup string, plan Plan) (string, error)
	}

	// Pipeline is the default Engine: it applies the plan's passes in order.
	Pipeline struct{}

	// Normalizer binds a Plan to an Engine.
	Normalizer struct {
		engine Engine
		plan   Plan
	}

	// Option configures a Normalizer.
	Option func(*Normalizer)
)

// Passes returns the base passes followed by the additional passes.
func (p Plan) Passes() []Pass {
	return slices.Concat(p.Base, p.Additional)
}

// Names returns the pass names in execution order.
func (p Plan) Names() []string {
	passes := p.Passes()
	names := make([]string, len(passes))
	for i, pass := range passes {
		names[i] = pass.Name()
	}
	return names
}

// Optimize implements Engine. The context is checked between passes.
func (Pipeline) Optimize(ctx context.Context, markup string, plan Plan) (string, error) {
	out := markup
	for _, pass := range plan.Passes() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		next, err := pass.Apply(out)
		if err != nil {
			return "", fmt.Errorf("pass %s: %w", pass.Name(), err)
		}
		out = next
	}
	return out, nil
}

// WithEngine replaces the default Pipeline engine.
func WithEngine(e Engine) Option {
	return func(n *Normalizer) {
		n.engine = e
	}
}

// New builds a Normalizer for cfg. Base passes named again in cfg.Passes are
// ignored, as are repeated additional passes.
func New(cfg Config, opts ...Option) (*Normalizer, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("configure normalization").
			WithSuggestion("Available passes: " + strings.Join(AdditionalPasses(), ", ")).
			WithSuggestion("Base passes (" + strings.Join(BasePasses(), ", ") + ") always run and need not be listed").
			Wrap(err).
			BuildError()
	}

	var plan Plan
	for _, name := range BasePasses() {
		pass, _ := builtinPass(name)
		plan.Base = append(plan.Base, pass)
	}

	seen := make(map[string]struct{})
	for _, name := range cfg.Passes {
		if slices.Contains(BasePasses(), name) {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		pass, _ := builtinPass(name)
		plan.Additional = append(plan.Additional, pass)
	}

	for _, rule := range cfg.Substitutions {
		pass, err := substitutionPass(rule)
		if err != nil {
			return nil, err
		}
		plan.Additional = append(plan.Additional, pass)
	}

	n := &Normalizer{engine: Pipeline{}, plan: plan}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Plan returns the normalizer's pass plan.
func (n *Normalizer) Plan() Plan {
	return n.plan
}

// Normalize runs markup through the engine. Failures are not retried.
func (n *Normalizer) Normalize(ctx context.Context, markup string) (string, error) {
	out, err := n.engine.Optimize(ctx, markup, n.plan)
	if err != nil {
		return "", fmt.Errorf("normalize: %w", err)
	}
	return out, nil
}
