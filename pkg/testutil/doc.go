// Package testutil carries the shared test fixtures: tempdir file and
// script creation plus small assertions for the tests that do not pull
// in testify.
//
// Test data is defined inline at the call site, never loaded from
// fixture files, and every test owns its own tempdir.
package testutil
