// Package testsupport holds fixtures shared by package tests: configs with
// temp directories, small documents, a grid-based fake renderer and a
// flat-colour fake video source.
package testsupport
