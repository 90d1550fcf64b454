// Package aliases maintains the archup block in a shell rc file.
//
// The block is delimited by two comment lines:
//
//	# Aliases
//	...
//	# end_alises
//
// The end marker's spelling is kept as found in existing rc files so
// that previously provisioned machines are updated in place.
//
// The alias profile also carries the adm function whose body lists the
// commands the migrate step runs.
package aliases
