package types

// AppExchangeInfo identifies an app to the authenticator.
type AppExchangeInfo struct {
	ID     string  `json:"id"`
	Scope  *string `json:"scope,omitempty"`
	Name   string  `json:"name"`
	Vendor string  `json:"vendor"`
}

// AuthReq asks for app authorisation.
type AuthReq struct {
	App          AppExchangeInfo                 `json:"app"`
	AppContainer bool                            `json:"app_container"`
	Containers   map[string]ContainerPermissions `json:"containers"`
}

// ContainersReq asks for additional container permissions.
type ContainersReq struct {
	App        AppExchangeInfo                 `json:"app"`
	Containers map[string]ContainerPermissions `json:"containers"`
}

// ShareMData names one mutable data to share with the app.
type ShareMData struct {
	TypeTag uint64               `json:"type_tag"`
	Name    XorName              `json:"name"`
	Perms   ContainerPermissions `json:"perms"`
}

// ShareMDataReq asks the owner to share mutable data with the app.
type ShareMDataReq struct {
	App   AppExchangeInfo `json:"app"`
	MData []ShareMData    `json:"mdata"`
}

// IpcReqKind discriminates IpcReq.
type IpcReqKind string

const (
	IpcReqAuth         IpcReqKind = "Auth"
	IpcReqContainers   IpcReqKind = "Containers"
	IpcReqUnregistered IpcReqKind = "Unregistered"
	IpcReqShareMData   IpcReqKind = "ShareMData"
)

// IpcReq is a request from an app to the authenticator. Exactly the member
// named by Kind is set.
type IpcReq struct {
	Kind         IpcReqKind     `json:"kind"`
	Auth         *AuthReq       `json:"auth,omitempty"`
	Containers   *ContainersReq `json:"containers,omitempty"`
	Unregistered []byte         `json:"unregistered,omitempty"`
	ShareMData   *ShareMDataReq `json:"share_mdata,omitempty"`
}

// IpcRespKind discriminates IpcResp.
type IpcRespKind string

const (
	IpcRespAuth         IpcRespKind = "Auth"
	IpcRespContainers   IpcRespKind = "Containers"
	IpcRespUnregistered IpcRespKind = "Unregistered"
	IpcRespShareMData   IpcRespKind = "ShareMData"
)

// IpcResp is the authenticator's answer to an IpcReq. Err is set on failure;
// otherwise Auth or Unregistered carry the payload for those kinds and
// Containers/ShareMData carry none.
type IpcResp struct {
	Kind         IpcRespKind      `json:"kind"`
	Auth         *AuthGranted     `json:"auth,omitempty"`
	Unregistered *BootstrapConfig `json:"unregistered,omitempty"`
	Err          *IpcError        `json:"err,omitempty"`
}

// IpcMsgKind discriminates IpcMsg.
type IpcMsgKind string

const (
	IpcMsgReq     IpcMsgKind = "Req"
	IpcMsgResp    IpcMsgKind = "Resp"
	IpcMsgRevoked IpcMsgKind = "Revoked"
	IpcMsgErr     IpcMsgKind = "Err"
)

// IpcMsg is a message exchanged between an app and the authenticator.
type IpcMsg struct {
	Kind  IpcMsgKind `json:"kind"`
	ReqID uint32     `json:"req_id,omitempty"`
	Req   *IpcReq    `json:"req,omitempty"`
	Resp  *IpcResp   `json:"resp,omitempty"`
	AppID string     `json:"app_id,omitempty"`
	Err   *IpcError  `json:"err,omitempty"`
}

// NewReqMsg wraps req in a request message.
func NewReqMsg(reqID uint32, req IpcReq) IpcMsg {
	return IpcMsg{Kind: IpcMsgReq, ReqID: reqID, Req: &req}
}

// NewRespMsg wraps resp in a response message.
func NewRespMsg(reqID uint32, resp IpcResp) IpcMsg {
	return IpcMsg{Kind: IpcMsgResp, ReqID: reqID, Resp: &resp}
}

// NewRevokedMsg tells appID that its access was revoked.
func NewRevokedMsg(appID string) IpcMsg {
	return IpcMsg{Kind: IpcMsgRevoked, AppID: appID}
}

// NewErrMsg carries a bare IPC error.
func NewErrMsg(err *IpcError) IpcMsg {
	return IpcMsg{Kind: IpcMsgErr, Err: err}
}
