// Package app hosts the optimization pipeline. It owns the logger, the
// location ID allocator and the loaded pipeline configuration, and runs
// Load, Build, Condense, Intersect, Export and Save in order, decoupled from
// any specific entrypoint like a CLI.
package app
