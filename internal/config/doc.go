// Package config loads, validates, and defaults the TOML configuration for
// subvoice. The Config value is immutable after Load and is passed by
// reference into every component.
package config
