// Package config normalizes raw CLI flag values into request configuration.
//
// It owns the loosely-typed-to-typed conversions: header arguments, --data
// bodies (strict JSON with a properties-style fallback), data files,
// content-type tokens, target URLs and proxy URLs. It also loads the
// optional per-user YAML config file that supplies flag defaults.
package config
