// Package catalog provides the per-pressing catalog of priced item templates.
// Labels are unique per pressing regardless of case.
package catalog
