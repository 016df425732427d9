package ipc_test

import (
	"reflect"
	"testing"

	"safeapp/internal/domain"
	"safeapp/internal/ipc"
)

func TestNewAuthReq_DefaultsToStandardContainers(t *testing.T) {
	app := domain.AppExchangeInfo{ID: "net.maidsafe.example", Name: "Example", Vendor: "MaidSafe"}
	req := ipc.NewAuthReq(app, true, nil)

	if len(req.Containers) != 6 {
		t.Fatalf("containers %v", req.Containers)
	}
	for _, name := range ipc.DefaultPrivateContainers {
		if !req.Containers[name].Has(domain.PermDelete) {
			t.Fatalf("%s: %v", name, req.Containers[name])
		}
	}
	if got := req.Containers["_public"]; got.Has(domain.PermDelete) || !got.Has(domain.PermRead) {
		t.Fatalf("_public: %v", got)
	}

	only := map[string]domain.ContainerPermissions{"_music": domain.NewContainerPermissions(domain.PermRead)}
	if got := ipc.NewAuthReq(app, false, only); !reflect.DeepEqual(got.Containers, only) {
		t.Fatalf("explicit containers replaced: %v", got.Containers)
	}
}

func TestEncodeAuthReq_Decodes(t *testing.T) {
	req := ipc.NewAuthReq(domain.AppExchangeInfo{ID: "net.maidsafe.example", Name: "Example", Vendor: "MaidSafe"}, true, nil)
	s, err := ipc.EncodeAuthReq(42, req)
	if err != nil {
		t.Fatalf("EncodeAuthReq: %v", err)
	}
	msg, err := ipc.DecodeMsg(s)
	if err != nil {
		t.Fatalf("DecodeMsg: %v", err)
	}
	if msg.Kind != domain.IpcMsgReq || msg.ReqID != 42 || msg.Req.Kind != domain.IpcReqAuth {
		t.Fatalf("got %+v", msg)
	}
	if !reflect.DeepEqual(*msg.Req.Auth, req) {
		t.Fatalf("auth req %+v, want %+v", *msg.Req.Auth, req)
	}

	if _, err := ipc.EncodeAuthReq(1, domain.AuthReq{}); err == nil {
		t.Fatal("request without app id encoded")
	}
}
