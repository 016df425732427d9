package ipc

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"safeapp/internal/domain"
)

// EncodeMetadata serialises md for storage next to a mutable data.
func EncodeMetadata(md domain.UserMetadata) ([]byte, error) {
	b, err := json.Marshal(md)
	if err != nil {
		return nil, domain.NewIpcError(domain.IpcErrEncodeDecodeError, err.Error())
	}
	return b, nil
}

// DecodeMetadata parses what EncodeMetadata produced. Unknown fields and
// trailing data are rejected.
func DecodeMetadata(b []byte) (domain.UserMetadata, error) {
	var md domain.UserMetadata
	if len(bytes.TrimSpace(b)) == 0 {
		return md, domain.NewIpcError(domain.IpcErrEncodeDecodeError, "empty metadata")
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&md); err != nil {
		return domain.UserMetadata{}, domain.NewIpcError(domain.IpcErrEncodeDecodeError, err.Error())
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.UserMetadata{}, domain.NewIpcError(domain.IpcErrEncodeDecodeError, "trailing data after metadata")
	}
	return md, nil
}
