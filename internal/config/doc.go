// Package config manages user-level settings stored at ~/.docshelf/config.yaml.
// Values come from, in increasing precedence: built-in defaults, the config
// file, DOCSHELF_* environment variables, and command-line flags bound by the
// cli package.
package config
