// Package diff compares two endpoint catalogs and classifies each change as
// breaking or not, for the changelog.
package diff
