// Package artifacts downloads the pipeline's model files.
//
// Artifacts whose destination already exists are never fetched again, so a
// repeated run performs no network access. Content is not verified: whatever
// the selected transport writes is accepted.
package artifacts
