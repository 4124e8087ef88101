// Package model defines the in-memory representation of an algebraic
// optimization model: constants, parameters, decision variables, intermediate
// variables, equations, objectives and prebuilt composite objects.
//
// A Model is built once, top to bottom, in declaration order (constants,
// parameters, variables, intermediates). Later equations may reference any
// earlier symbol but not the other way around; the translate package relies
// on that ordering when it emits declare-before-use statement streams.
package model
