// Package shared holds cross-cutting helpers that belong to no single
// layer. Keep it free of business logic and of dependencies on other
// internal packages.
//
// The testutil subpackage provides the canonical dataset fixture and
// logging helpers used by tests across the codebase.
package shared
