// Package iojson reads and writes JSON on CLI stdio: indented output on
// stdout, structured errors on stderr, and a flag-driven reader for
// file-or-stdin input.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Error is the stderr error shape. Data carries whatever context the
// command has about the failure.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// fallbackError builds an error blob by hand for when marshaling the Error
// struct itself failed.
func fallbackError(msg string, jsonErr error) string {
	msgBytes, _ := json.Marshal(msg)
	errBytes, _ := json.Marshal(jsonErr.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msgBytes, errBytes)
}

// WriteError prints an Error to stderr and returns the write error, so a
// command action can `return iojson.WriteError(...)` directly.
func WriteError(msg string, data map[string]any) error {
	bits, err := json.MarshalIndent(Error{Message: msg, Data: data}, "", "  ")
	out := string(bits)
	if err != nil {
		out = fallbackError(msg, err)
	}

	_, werr := fmt.Fprintln(os.Stderr, out)
	return werr
}

// WriteWith marshals obj indented onto w; marshal failures are reported as
// an Error blob on ew instead.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_, werr := fmt.Fprintln(ew, fallbackError("error marshaling in iojson.Write", err))
		return werr
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// Write calls WriteWith with [os.Stdout] and [os.Stderr].
func Write(obj any) error {
	return WriteWith(os.Stdout, os.Stderr, obj)
}
