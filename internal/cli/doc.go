// Package cli implements the easel command line interface.
//
// Commands operate on YAML board files and, for import/export/boards,
// the SQLite store. Output is text by default and a JSON envelope with
// --format json; errors carry stable E-codes and map to exit codes
// (0 success, 1 validation failure, 2 command error).
package cli
