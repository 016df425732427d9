// Package ipc encodes and decodes the messages an app exchanges with an
// authenticator.
//
// A message travels as a single string: the JSON encoding of a
// domain.IpcMsg, wrapped in multibase. EncodeMsg always emits base32 (the
// "b" prefix); DecodeMsg accepts any multibase encoding.
//
// Decode failures are *domain.IpcError values:
//
//   - InvalidMsg when the input is empty or its shape is not a known message
//   - EncodeDecodeError when the multibase or JSON layer cannot be read
package ipc
