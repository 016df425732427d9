package commands

import (
	"errors"
	"reflect"
	"testing"

	"safeapp/internal/domain"
)

func TestAuthImport_GrantNeedsPassphrase(t *testing.T) {
	appID, passphrase = "net.maidsafe.example", ""
	t.Cleanup(func() { appID, passphrase = "", "" })

	cmd := authImportCmd()
	if err := cmd.RunE(cmd, []string{"bAAAA"}); !errors.Is(err, errNoPassphrase) {
		t.Fatalf("got %v", err)
	}
}

func TestParseContainers(t *testing.T) {
	got, err := parseContainers([]string{"_music=Read", " _public = Read, Insert"})
	if err != nil {
		t.Fatalf("parseContainers: %v", err)
	}
	want := map[string]domain.ContainerPermissions{
		"_music":  domain.NewContainerPermissions(domain.PermRead),
		"_public": domain.NewContainerPermissions(domain.PermRead, domain.PermInsert),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v", got)
	}
	if got, err := parseContainers(nil); got != nil || err != nil {
		t.Fatalf("no pairs: %v %v", got, err)
	}
	for _, bad := range []string{"_music", "=Read", "_music=Fly"} {
		if _, err := parseContainers([]string{bad}); err == nil {
			t.Fatalf("%q parsed", bad)
		}
	}
}
