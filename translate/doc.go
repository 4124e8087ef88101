// Package translate converts a model into backend statement streams.
//
// A Translator walks the model once in declaration order (constants,
// parameters, variables, intermediates, then constraints and objectives),
// normalizes and parses every equation exactly once, expands prebuilt
// composite objects into primitive constraints, and fans the resulting
// entities out to every attached Emitter.
//
// All auto-naming counters are owned by the Translator, so independent
// conversions never share state. A validation pass runs before the first
// entity is emitted; a failing model produces no partial output.
package translate
