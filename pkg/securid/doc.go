/*
Package securid implements the core cryptographic state machine of a
software emulator for a widely deployed commercial hardware-token
two-factor authentication product (token format versions 1 and 2, "ctf"
string encoding).

It decodes a printable ctf token string into a Token, decrypts the token's
encrypted seed (optionally protected by a password and/or a device-binding
id), computes the current 6-8 digit tokencode for a given time, and encodes
a Token back into a ctf string. A small custom MAC built on AES-128-ECB
underlies both the ctf string's checksum and the key-hash derivation; there
is no standard MAC construction here (see macHash) and no wire tolerance -
every constant, bit offset, and padding rule must match the reference
format exactly.

The package is a pure, synchronous library: no operation performs I/O
beyond drawing randomness from crypto/rand, and Token values carry no
interior synchronization, so concurrent callers must not mutate the same
Token from multiple goroutines at once.

# ctf string layout

A ctf string is 81 ASCII decimal digits. DecodeToken accepts only that
length (MinTokenChars equals MaxTokenChars); shorter strings, including
71-80 digit ones, are rejected with ErrBadLen:

	[0,1)                version, '1' or '2'
	[1,13)                serial (12 digits)
	[binencOfs, checksumOfs)  189 bits, 3 bits/digit, encoding:
	                          enc_seed(128) || flags(16) || exp_date(14) ||
	                          reserved(1) || dec_seed_hash(15) || device_id_hash(15)
	last 5 digits         15-bit short MAC of everything before it

Encoding always emits version '2' regardless of the decoded version.

# Error handling

Every fallible operation returns an *Error carrying a stable ErrorCode
(see errors.go); front-ends should use the Is* predicates rather than
comparing error strings, since those stay stable across releases but the
message text may not.
*/
package securid
