// Package config defines the bootstrap configuration model.
//
// The [Config] struct lists the working directories to provision, the
// external executables the pipeline expects on PATH, the model artifacts to
// fetch and the transport preference order. [Default] returns the built-in
// layout; [Load] overlays an optional YAML file and DEEP_ARCHIVE_* environment
// variables on top of it and validates the result.
package config
