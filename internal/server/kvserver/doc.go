// Package kvserver implements the KeyWire line protocol server.
//
// The protocol is newline-framed text: one command per line, one reply
// per line. Supported commands:
//
//	GET key        -> value | (nil)
//	SET key value  -> OK        (the value may contain spaces)
//	DELETE key     -> 1 | 0
//
// Verbs match case-insensitively; keys are case-sensitive. Unknown
// verbs and arity mistakes produce an ERROR: reply and leave the
// connection open. A request line over MaxLineLen is answered with an
// ERROR: reply and closes the connection.
//
// The literal "(nil)" marks a missing key on GET. A value that was
// itself set to the string "(nil)" is indistinguishable in that reply;
// clients needing the distinction should not store that literal.
package kvserver
