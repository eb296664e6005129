// Package config loads, normalizes, and validates sublint configuration.
//
// Configuration lives in a TOML file (default ~/.config/sublint/config.toml,
// falling back to ./sublint.toml). Load applies defaults, expands paths,
// consults environment fallbacks for secrets, and validates every section
// before returning. CreateSample writes the embedded annotated sample.
package config
