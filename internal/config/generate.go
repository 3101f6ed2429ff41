// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"
)

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// iconsprite configuration file\n")
	sb.WriteString("// Environment variables override these values, e.g. ICONSPRITE_DIR.\n\n")

	if cfg.Dir != "" {
		fmt.Fprintf(&sb, "dir:    %q\n", cfg.Dir)
	}
	fmt.Fprintf(&sb, "prefix: %q\n", cfg.Prefix)
	fmt.Fprintf(&sb, "watch:  %v\n", cfg.Watch)
	if len(cfg.Ignore) > 0 {
		sb.WriteString("ignore: [")
		for i, pat := range cfg.Ignore {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%q", pat)
		}
		sb.WriteString("]\n")
	}
	fmt.Fprintf(&sb, "debounce: %q\n", cfg.Debounce.String())

	sb.WriteString("\nnormalize: {\n")
	sb.WriteString("\t// Base passes (cleanup, removeXMLNS, removeTitle) always run first.\n")
	sb.WriteString("\tpasses: [")
	for i, name := range cfg.Normalize.Passes {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q", name)
	}
	sb.WriteString("]\n")
	if len(cfg.Normalize.Substitutions) > 0 {
		sb.WriteString("\tsubstitutions: [\n")
		for _, rule := range cfg.Normalize.Substitutions {
			fmt.Fprintf(&sb, "\t\t{name: %q, pattern: %q, replacement: %q},\n", rule.Name, rule.Pattern, rule.Replacement)
		}
		sb.WriteString("\t]\n")
	}
	sb.WriteString("}\n")

	sb.WriteString("\nserve: {\n")
	fmt.Fprintf(&sb, "\taddr: %q\n", cfg.Serve.Addr)
	fmt.Fprintf(&sb, "\troot: %q\n", cfg.Serve.Root)
	sb.WriteString("}\n")

	return sb.String()
}
