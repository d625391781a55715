// Package handlers implements the behavior behind each CLI command.
//
// Handlers load configuration, wire the bootstrap components together and
// print results. Collaborators are held in package variables so tests can
// replace them.
package handlers
