// Package registry provides a generic, type-safe registry for
// name-keyed items. Step types register their builders through it
// during init(), keeping the set of known steps open for extension.
package registry
