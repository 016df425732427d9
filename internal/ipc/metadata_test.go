package ipc_test

import (
	"errors"
	"testing"

	"safeapp/internal/domain"
	"safeapp/internal/ipc"
)

func TestMetadata_OptionalFields(t *testing.T) {
	desc := "test"
	b, err := ipc.EncodeMetadata(domain.UserMetadata{Description: &desc})
	if err != nil {
		t.Fatalf("EncodeMetadata: %v", err)
	}
	md, err := ipc.DecodeMetadata(b)
	if err != nil {
		t.Fatalf("DecodeMetadata: %v", err)
	}
	if md.Name != nil || md.Description == nil || *md.Description != "test" {
		t.Fatalf("got %+v", md)
	}
}

func TestDecodeMetadata_Malformed(t *testing.T) {
	for name, in := range map[string]string{
		"empty":    "  ",
		"unknown":  `{"name":"a","colour":"red"}`,
		"trailing": `{"name":"a"}{}`,
		"shape":    `["a"]`,
	} {
		_, err := ipc.DecodeMetadata([]byte(in))
		if !errors.Is(err, domain.ErrIpcEncodeDecodeError) {
			t.Fatalf("%s: got %v", name, err)
		}
	}
}
