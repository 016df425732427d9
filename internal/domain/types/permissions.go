package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Permission is a single right over a container.
type Permission uint8

const (
	PermRead Permission = 1 << iota
	PermInsert
	PermUpdate
	PermDelete
	PermManagePermissions
)

var permissionNames = []struct {
	perm Permission
	name string
}{
	{PermRead, "Read"},
	{PermInsert, "Insert"},
	{PermUpdate, "Update"},
	{PermDelete, "Delete"},
	{PermManagePermissions, "ManagePermissions"},
}

// ContainerPermissions is a set of permissions. On the wire it is a sorted
// list of names, e.g. ["Read","Insert"].
type ContainerPermissions uint8

// NewContainerPermissions returns the set holding perms.
func NewContainerPermissions(perms ...Permission) ContainerPermissions {
	var out ContainerPermissions
	for _, p := range perms {
		out |= ContainerPermissions(p)
	}
	return out
}

// Has reports whether p is in the set.
func (c ContainerPermissions) Has(p Permission) bool { return c&ContainerPermissions(p) != 0 }

// Names returns the permission names in canonical order.
func (c ContainerPermissions) Names() []string {
	names := make([]string, 0, len(permissionNames))
	for _, pn := range permissionNames {
		if c.Has(pn.perm) {
			names = append(names, pn.name)
		}
	}
	return names
}

// String implements fmt.Stringer.
func (c ContainerPermissions) String() string { return strings.Join(c.Names(), "|") }

// MarshalJSON encodes the set as a list of names.
func (c ContainerPermissions) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Names())
}

// UnmarshalJSON rejects unknown permission names.
func (c *ContainerPermissions) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	out, err := ParsePermissions(names)
	if err != nil {
		return err
	}
	*c = out
	return nil
}

// ParsePermissions builds a set from permission names such as "Read".
func ParsePermissions(names []string) (ContainerPermissions, error) {
	var out ContainerPermissions
next:
	for _, n := range names {
		for _, pn := range permissionNames {
			if pn.name == n {
				out |= ContainerPermissions(pn.perm)
				continue next
			}
		}
		return 0, fmt.Errorf("unknown permission %q", n)
	}
	return out, nil
}
