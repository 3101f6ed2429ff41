// SPDX-License-Identifier: MPL-2.0

package normalize

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Pass names understood by New.
const (
	PassCleanup            = "cleanup"
	PassRemoveXMLNS        = "removeXMLNS"
	PassRemoveTitle        = "removeTitle"
	PassRemoveComments     = "removeComments"
	PassRemoveDesc         = "removeDesc"
	PassRemoveMetadata     = "removeMetadata"
	PassRemoveDimensions   = "removeDimensions"
	PassRemoveStyleElement = "removeStyleElement"
)

type (
	// Config holds the caller-supplied part of the pipeline.
	Config struct {
		// Passes are additional built-in pass names, run after the base passes.
		Passes []string `json:"passes" mapstructure:"passes"`
		// Substitutions are regex rules applied last, in order.
		Substitutions []SubstitutionRule `json:"substitutions" mapstructure:"substitutions"`
	}

	// SubstitutionRule defines a regex pattern and its replacement.
	SubstitutionRule struct {
		// Name identifies the rule in logs and errors.
		Name string `json:"name" mapstructure:"name"`
		// Pattern is a regular expression (RE2 syntax).
		Pattern string `json:"pattern" mapstructure:"pattern"`
		// Replacement may reference capture groups as $1 or ${name}.
		Replacement string `json:"replacement" mapstructure:"replacement"`
	}
)

// BasePasses returns the fixed base pass names in execution order.
func BasePasses() []string {
	return []string{PassCleanup, PassRemoveXMLNS, PassRemoveTitle}
}

// AdditionalPasses returns the built-in pass names that may be requested in Config.Passes.
func AdditionalPasses() []string {
	return []string{
		PassRemoveComments,
		PassRemoveDesc,
		PassRemoveMetadata,
		PassRemoveDimensions,
		PassRemoveStyleElement,
	}
}

// ValidateConfig checks pass names and compiles every substitution pattern.
func ValidateConfig(cfg Config) error {
	for _, name := range cfg.Passes {
		if slices.Contains(BasePasses(), name) {
			continue
		}
		if !slices.Contains(AdditionalPasses(), name) {
			return fmt.Errorf("unknown pass %q (available: %s)", name, strings.Join(AdditionalPasses(), ", "))
		}
	}
	for i, rule := range cfg.Substitutions {
		if rule.Pattern == "" {
			return fmt.Errorf("substitution rule %d (%s): empty pattern", i, rule.Name)
		}
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			return fmt.Errorf("substitution rule %d (%s): invalid regex: %w", i, rule.Name, err)
		}
	}
	return nil
}
