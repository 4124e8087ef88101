package io

import (
	"encoding/json"
	"io"
	"os"
)

// value maps are the exchange format between a translated model and a
// file-based solver process: initial guesses go out, solved values come
// back. The format is human readable JSON, one entry per symbol name.

// WriteValues serializes a symbol value map into the file at path.
func WriteValues(path string, from map[string]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return serializeValues(f, from)
}

// ReadValues reads a symbol value map from the file at path into the given
// map.
func ReadValues(path string, into map[string]float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return deserializeValues(f, into)
}

func serializeValues(writer io.Writer, from map[string]float64) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "    ")
	return encoder.Encode(from)
}

func deserializeValues(reader io.Reader, into map[string]float64) error {
	decoder := json.NewDecoder(reader)

	read := make(map[string]float64)
	if err := decoder.Decode(&read); err != nil {
		return err
	}
	for k, v := range read {
		into[k] = v
	}
	return nil
}
