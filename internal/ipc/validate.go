package ipc

import (
	"fmt"

	"safeapp/internal/domain"
)

func invalid(format string, args ...any) error {
	return domain.NewIpcError(domain.IpcErrInvalidMsg, fmt.Sprintf(format, args...))
}

// Validate checks that exactly the members selected by the kind fields are
// populated.
func Validate(msg domain.IpcMsg) error {
	switch msg.Kind {
	case domain.IpcMsgReq:
		if msg.Req == nil || msg.Resp != nil || msg.Err != nil || msg.AppID != "" {
			return invalid("Req message must carry only a request")
		}
		return validateReq(*msg.Req)
	case domain.IpcMsgResp:
		if msg.Resp == nil || msg.Req != nil || msg.Err != nil || msg.AppID != "" {
			return invalid("Resp message must carry only a response")
		}
		return validateResp(*msg.Resp)
	case domain.IpcMsgRevoked:
		if msg.AppID == "" || msg.Req != nil || msg.Resp != nil || msg.Err != nil || msg.ReqID != 0 {
			return invalid("Revoked message must carry only an app id")
		}
		return nil
	case domain.IpcMsgErr:
		if msg.Err == nil || msg.Req != nil || msg.Resp != nil || msg.AppID != "" {
			return invalid("Err message must carry only an error")
		}
		return validateErr(msg.Err)
	default:
		return invalid("unknown message kind %q", msg.Kind)
	}
}

func validateReq(req domain.IpcReq) error {
	set := 0
	if req.Auth != nil {
		set++
	}
	if req.Containers != nil {
		set++
	}
	if req.ShareMData != nil {
		set++
	}
	switch req.Kind {
	case domain.IpcReqAuth:
		if req.Auth == nil || set != 1 || req.Unregistered != nil {
			return invalid("Auth request must carry only an AuthReq")
		}
		if req.Auth.App.ID == "" {
			return invalid("Auth request without app id")
		}
	case domain.IpcReqContainers:
		if req.Containers == nil || set != 1 || req.Unregistered != nil {
			return invalid("Containers request must carry only a ContainersReq")
		}
		if req.Containers.App.ID == "" {
			return invalid("Containers request without app id")
		}
	case domain.IpcReqUnregistered:
		if set != 0 {
			return invalid("Unregistered request must carry only extra data")
		}
	case domain.IpcReqShareMData:
		if req.ShareMData == nil || set != 1 || req.Unregistered != nil {
			return invalid("ShareMData request must carry only a ShareMDataReq")
		}
		if req.ShareMData.App.ID == "" {
			return invalid("ShareMData request without app id")
		}
	default:
		return invalid("unknown request kind %q", req.Kind)
	}
	return nil
}

func validateResp(resp domain.IpcResp) error {
	if resp.Err != nil {
		if resp.Auth != nil || resp.Unregistered != nil {
			return invalid("%s response carries both payload and error", resp.Kind)
		}
		if err := validateErr(resp.Err); err != nil {
			return err
		}
	}
	switch resp.Kind {
	case domain.IpcRespAuth:
		if resp.Unregistered != nil || (resp.Err == nil && resp.Auth == nil) {
			return invalid("Auth response must carry a grant or an error")
		}
	case domain.IpcRespUnregistered:
		if resp.Auth != nil || (resp.Err == nil && resp.Unregistered == nil) {
			return invalid("Unregistered response must carry a bootstrap config or an error")
		}
	case domain.IpcRespContainers, domain.IpcRespShareMData:
		if resp.Auth != nil || resp.Unregistered != nil {
			return invalid("%s response carries an unexpected payload", resp.Kind)
		}
	default:
		return invalid("unknown response kind %q", resp.Kind)
	}
	return nil
}

func validateErr(e *domain.IpcError) error {
	if !e.Kind.Known() {
		return invalid("unknown error kind %q", e.Kind)
	}
	return nil
}
