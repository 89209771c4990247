// Package config loads morph's layered configuration.
//
// Layers, lowest precedence first:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config file ($XDG_CONFIG_HOME/morph/config.toml or --config)
//  3. MORPH_* environment variables, where the first underscore after the
//     prefix separates section and key: MORPH_INSTALL_COMMAND=pnpm sets
//     install.command
//
// A template may additionally ship a .morph.toml next to its reducer module;
// its overrides are applied per run with ApplyTemplateOverrides.
package config
