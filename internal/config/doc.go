// Package config loads, validates, and normalizes the vidsub TOML
// configuration. All path fields are tilde-expanded and absolute after Load.
package config
