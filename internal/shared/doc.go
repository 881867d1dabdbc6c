// Package shared provides common utilities and test helpers used across the
// codebase. It is a home for functionality that does not belong to any
// specific domain or architectural layer.
//
// The testutil subpackage provides log-capture helpers so tests can assert
// on structured log output without parsing serialized handler output.
//
// This package should not contain business logic, domain-specific code, or
// dependencies on other internal packages.
package shared
