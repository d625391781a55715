// Package wizard provides the interactive form behind the init command.
//
// It uses charmbracelet/huh to ask for the transport preference and, when
// the S3 mirror is part of it, the mirror location. Run collects the
// answers into a Result and BuildConfig turns them into a Config based on
// the built-in defaults.
package wizard
