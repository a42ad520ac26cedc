// SPDX-License-Identifier: MPL-2.0

// Package config loads demeter's configuration with viper, using CUE as the
// file format.
//
// Values come from, in increasing priority: built-in defaults, config.cue
// (validated against the embedded #Config schema) and DEMETER_* environment
// variables. The file is looked up in the platform config directory
// (~/.config/demeter on Linux) and then in the working directory.
package config
