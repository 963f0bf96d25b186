/*
Package listcrypt provides reversible, type-preserving obfuscation of arbitrary values.

Note that this is NOT encryption in the cryptographic sense.
There is no authentication and no nonce: identical inputs under the same key always produce identical output,
and the scheme makes no claim against known or chosen plaintext analysis or tampering.
Use it to keep data from casual observation, never to protect secrets.

# How it works:

The key is hashed repeatedly (sha256 of the key with a counter suffix, base64 encoded) into a keystream at least as long as the data.
Every data byte is added to the keystream byte at the same position modulo a range derived from the largest byte in the data.
The data is split into contiguous segments that are transformed in parallel and joined back in order;
the segment count changes only the speed, never the output.

The input's type (text, bytes, or a structured literal) and the modulus are recorded in a small header
that is itself encrypted with the hash of the key and placed in front of the body.
A short confirmation marker is prepended to the plaintext so that decrypting with the wrong key is detected
and reported as ErrKeyMismatch instead of returning garbage.

# Usage:

	blob, err := listcrypt.Encrypt("my key", "hello world")
	...
	v, err := listcrypt.Decrypt("my key", blob)
	if errors.Is(err, listcrypt.ErrKeyMismatch) {
		// wrong key or corrupted data
	}
	text, _ := v.Str()
*/
package listcrypt
