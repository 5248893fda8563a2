// Package config provides configuration loading for stencil.
//
// Configuration is layered (highest to lowest priority):
//  1. Environment variables (STENCIL_*)
//  2. Project config (.stencil/config.yml), or the file passed with --config
//  3. User config (~/.stencil/config.yml)
//  4. Built-in defaults
//
// Environment Variable Convention:
//   - Prefix: STENCIL_
//   - Nested fields: Use underscores (STENCIL_EXTRACTION_INCLUDE_PRIVATE)
//   - Automatic mapping via Viper's SetEnvKeyReplacer
//
// Example usage:
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	opts := cfg.Extraction
package config
