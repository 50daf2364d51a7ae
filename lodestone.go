// Package lodestone extracts typed values from parsed Lodestone HTML pages.
// Extraction is driven by field definitions (a CSS selector plus an optional
// attribute name and regular expression) rather than per-field traversal
// code, so page models are assembled from configuration.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, fs/, slog/).
package lodestone
