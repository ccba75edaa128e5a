package hexgrid

import (
	"errors"
	"fmt"
)

// ErrFailedConversion reports that the engine returned its zero sentinel for
// a coordinate-to-index or parent-resolution call. The engine does not
// distinguish causes, so no further detail is available.
var ErrFailedConversion = errors.New("hexgrid: conversion to cell index failed")

// InvalidIndexError reports a raw integer rejected by the engine's validity
// predicate.
type InvalidIndexError struct {
	Value uint64
}

func (e InvalidIndexError) Error() string {
	return fmt.Sprintf("hexgrid: %#x is not a valid cell index", e.Value)
}

// InvalidStringError reports text that contained an embedded NUL or that the
// engine's parser rejected.
type InvalidStringError struct {
	Value string
}

func (e InvalidStringError) Error() string {
	return fmt.Sprintf("hexgrid: %q is not a valid cell index string", e.Value)
}

// IncompatibleIndexesError reports a distance query the engine could not
// answer: differing resolutions, distance beyond the search radius, or a
// path the engine cannot resolve across pentagonal distortion. Both operands
// are carried for diagnostics.
type IncompatibleIndexesError struct {
	Left  Index
	Right Index
}

func (e IncompatibleIndexesError) Error() string {
	return fmt.Sprintf("hexgrid: no grid distance between %#x and %#x", e.Left.Raw(), e.Right.Raw())
}
