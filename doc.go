// Package amplet translates algebraic optimization models into solver-ready
// representations.
//
// A model (see package model) declares constants, parameters, decision
// variables, intermediates, equations and objectives. The translate package
// normalizes and parses every equation once and fans the result out to one or
// more backends:
//   - backend/ampl emits a line-oriented AMPL model file
//   - backend/graph builds a symbolic expression graph consumable by a solver
//
// The solve package drives a full translation, invokes an external solver and
// writes solved values back into the model.
package amplet

import (
	"github.com/blang/semver/v4"
)

// Version of the amplet library.
var Version = semver.MustParse("0.4.0")
