// Package config handles configuration management for dotfiles.
//
// Two kinds of configuration exist. The mappings file lives inside the
// repository and lists the managed paths; it is read and written with
// go-toml. Settings tune a single invocation and are layered with koanf from
// built-in defaults, an optional per-user settings file, DOTFILES_*
// environment variables and command-line flags.
package config
