package types

// BootstrapConfig lists the contacts used to join the network.
type BootstrapConfig struct {
	HardCodedContacts []string `json:"hard_coded_contacts"`
}

// IsEmpty reports whether no contacts are configured.
func (c BootstrapConfig) IsEmpty() bool { return len(c.HardCodedContacts) == 0 }

// EncInfo is the optional encryption material of a mutable data.
type EncInfo struct {
	Key   SymmetricKey `json:"key"`
	Nonce Nonce        `json:"nonce"`
}

// MDataInfo locates (and optionally decrypts) a mutable data.
type MDataInfo struct {
	Name    XorName  `json:"name"`
	TypeTag uint64   `json:"type_tag"`
	EncInfo *EncInfo `json:"enc_info,omitempty"`
}

// ContainerInfo is one entry of an app's access container.
type ContainerInfo struct {
	MDataInfo   MDataInfo            `json:"mdata_info"`
	Permissions ContainerPermissions `json:"permissions"`
}

// AccessContainerEntry maps container names to what the app may do there.
type AccessContainerEntry map[string]ContainerInfo

// AccessContInfo addresses the access container.
type AccessContInfo struct {
	ID    XorName `json:"id"`
	Tag   uint64  `json:"tag"`
	Nonce Nonce   `json:"nonce"`
}

// MDataInfo returns the private MDataInfo for the access container, keyed
// with the app's symmetric key.
func (a AccessContInfo) MDataInfo(encKey SymmetricKey) MDataInfo {
	return MDataInfo{
		Name:    a.ID,
		TypeTag: a.Tag,
		EncInfo: &EncInfo{Key: encKey, Nonce: a.Nonce},
	}
}

// AuthGranted is what an authenticator hands back when it authorises an app.
type AuthGranted struct {
	AppKeys              AppKeys              `json:"app_keys"`
	BootstrapConfig      BootstrapConfig      `json:"bootstrap_config"`
	AccessContainerInfo  AccessContInfo       `json:"access_container_info"`
	AccessContainerEntry AccessContainerEntry `json:"access_container_entry"`
}
