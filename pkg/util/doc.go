// Package util provides small shared helpers for restdata packages.
//
//   - TruncateBody: cap response bodies for safe logging
package util
