// Package config provides the configuration of the Pokédex: species API
// access, storage location, the tag serial table, and session settings.
// Values are layered as defaults, then the YAML file, then the environment,
// then command line flags.
package config
