// Package config aggregates the components of a SWAN run into a single
// configuration and renders it as one INPUT file.
//
// Slots are rendered in solver order: startup, cgrid, inpgrid, wind,
// physics, numerics, boundary, initial, output and lockup. Startup, cgrid
// and lockup are required; every other slot may be left empty.
//
// The package also defines the Loader interface that format-specific
// packages (HCL, YAML) implement, and Load, which reads a file or a
// directory through them.
package config
