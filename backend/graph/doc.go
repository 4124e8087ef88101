// Package graph builds a symbolic expression object graph from the
// translated entity stream.
//
// Every entity becomes one component attached to a shared Model container,
// keyed by name. Constraint and objective expressions reference the attached
// components directly, so a solver can walk the graph without any further
// name resolution. The graph can be evaluated in place and serialized.
package graph
