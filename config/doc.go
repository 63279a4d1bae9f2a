// Package config loads and validates fuzzscan configuration.
//
// Settings come from a TOML file with [search], [corpus], [ingest] and
// [logging] tables. Missing keys keep their defaults, so an empty file is a
// valid configuration. Command line flags override values loaded here.
package config
