// Package format declares the small enumerations shared by the hspice packages:
// data precision, real/complex value type, analysis type, variable kind and the
// compression applied to a whole waveform file.
package format
