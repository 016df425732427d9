package ipc

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/multiformats/go-multibase"

	"safeapp/internal/domain"
)

// EncodeMsg serialises msg into its string form.
func EncodeMsg(msg domain.IpcMsg) (string, error) {
	if err := Validate(msg); err != nil {
		return "", err
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return "", domain.NewIpcError(domain.IpcErrEncodeDecodeError, err.Error())
	}
	s, err := multibase.Encode(multibase.Base32, raw)
	if err != nil {
		return "", domain.NewIpcError(domain.IpcErrEncodeDecodeError, err.Error())
	}
	return s, nil
}

// DecodeMsg parses the string form of a message.
func DecodeMsg(encoded string) (domain.IpcMsg, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return domain.IpcMsg{}, domain.NewIpcError(domain.IpcErrInvalidMsg, "empty message")
	}
	_, raw, err := multibase.Decode(encoded)
	if err != nil {
		return domain.IpcMsg{}, domain.NewIpcError(domain.IpcErrEncodeDecodeError, err.Error())
	}
	msg, err := unmarshalStrict(raw)
	if err != nil {
		return domain.IpcMsg{}, domain.NewIpcError(domain.IpcErrEncodeDecodeError, err.Error())
	}
	if err := Validate(msg); err != nil {
		return domain.IpcMsg{}, err
	}
	return msg, nil
}

func unmarshalStrict(raw []byte) (domain.IpcMsg, error) {
	var msg domain.IpcMsg
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&msg); err != nil {
		return domain.IpcMsg{}, err
	}
	// Trailing data means the payload was not a single message.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.IpcMsg{}, errors.New("trailing data after message")
	}
	return msg, nil
}

// GenReqID returns a random non-zero request id.
func GenReqID() uint32 {
	var b [4]byte
	for {
		if _, err := rand.Read(b[:]); err != nil {
			panic(err)
		}
		if id := binary.LittleEndian.Uint32(b[:]); id != 0 {
			return id
		}
	}
}
