// Package section reads the framed structures of an HSPICE binary waveform file.
//
// Every structure in the file, header text and numeric data alike, is wrapped in
// a block:
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Frame (16 bytes)                                         │
//	│  - word 0: marker, always 4                              │
//	│  - word 1: item width (ignored)                          │
//	│  - word 2: marker, always 4                              │
//	│  - word 3: payload length in bytes                       │
//	├──────────────────────────────────────────────────────────┤
//	│ Payload (length bytes)                                   │
//	├──────────────────────────────────────────────────────────┤
//	│ Trailer (4 bytes): payload length again                  │
//	└──────────────────────────────────────────────────────────┘
//
// The file has no byte order flag. ReadFrame picks the order under which both
// marker words read as 4 and pins it on the cursor; a later frame that only
// matches the other order is rejected.
//
// # Header
//
// The header is a sequence of blocks with 1-byte items whose concatenated payload
// ends at the literal "$&%#". The resulting blob holds fixed-offset ASCII fields:
//
//	Bytes     | Field
//	----------|------------------------------------------------
//	0-3       | variable count (includes the scale)
//	4-7       | probe count
//	8-11      | sweep dimension count (0 or 1)
//	16-19     | post marker "9007" or "9601" (32-bit data)
//	20-23     | post marker "2001" (64-bit data, takes precedence)
//	24-87     | title, space padded
//	88-111    | date
//	176-185   | sweep size for 32-bit files
//	187-196   | sweep size for 2001 files
//	256-      | whitespace separated tokens
//
// The token list starts with a type code (2 means complex AC data). Token
// VectorCount is the scale name, the following VectorCount-1 tokens name the
// signals and, for swept files, token 2*VectorCount names the sweep parameter.
package section
