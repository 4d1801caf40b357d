// Package driver orchestrates batch operations over shorthand files:
// parsing, formatting, linting and tokenizing. It owns file collection,
// bounded parallelism, the on-disk document cache and progress events;
// rendering stays in diagfmt and the CLI.
package driver
