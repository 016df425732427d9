package ipc

import (
	"encoding/json"
	"strings"

	"safeapp/internal/domain"
)

// SerialiseBootstrapConfig returns the byte form handed to AppUnregistered.
func SerialiseBootstrapConfig(cfg domain.BootstrapConfig) ([]byte, error) {
	if cfg.HardCodedContacts == nil {
		cfg.HardCodedContacts = []string{}
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return nil, domain.NewIpcError(domain.IpcErrEncodeDecodeError, err.Error())
	}
	return b, nil
}

// DeserialiseBootstrapConfig parses the byte form of a bootstrap config.
// Blank contacts are rejected.
func DeserialiseBootstrapConfig(b []byte) (domain.BootstrapConfig, error) {
	var cfg domain.BootstrapConfig
	if len(b) == 0 {
		return cfg, domain.NewIpcError(domain.IpcErrEncodeDecodeError, "empty bootstrap config")
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return domain.BootstrapConfig{}, domain.NewIpcError(domain.IpcErrEncodeDecodeError, err.Error())
	}
	for _, c := range cfg.HardCodedContacts {
		if strings.TrimSpace(c) == "" {
			return domain.BootstrapConfig{}, domain.NewIpcError(domain.IpcErrEncodeDecodeError, "blank bootstrap contact")
		}
	}
	return cfg, nil
}

// EncodeUnregisteredReq builds the request an unregistered app sends to
// obtain a bootstrap config.
func EncodeUnregisteredReq(reqID uint32, extra []byte) (string, error) {
	return EncodeMsg(domain.NewReqMsg(reqID, domain.IpcReq{
		Kind:         domain.IpcReqUnregistered,
		Unregistered: extra,
	}))
}
