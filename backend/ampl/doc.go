// Package ampl emits a model as an ordered sequence of AMPL statements.
//
// Statements are appended in declaration order and never reordered; AMPL
// requires every name to be declared before use. The resulting Program can
// be inspected line by line, streamed to a writer, or saved as a .mod file.
package ampl
