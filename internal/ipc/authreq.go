package ipc

import "safeapp/internal/domain"

var (
	// DefaultPrivateContainers are the standard containers holding the
	// user's private data.
	DefaultPrivateContainers = []string{"_documents", "_downloads", "_music", "_videos", "_publicNames"}
	// DefaultPublicContainers are the standard containers anyone can read.
	DefaultPublicContainers = []string{"_public"}
)

// DefaultContainers requests every standard container: full data access to
// the private ones and read/insert on the public one.
func DefaultContainers() map[string]domain.ContainerPermissions {
	private := domain.NewContainerPermissions(domain.PermRead, domain.PermInsert, domain.PermUpdate, domain.PermDelete)
	public := domain.NewContainerPermissions(domain.PermRead, domain.PermInsert)

	out := make(map[string]domain.ContainerPermissions, len(DefaultPrivateContainers)+len(DefaultPublicContainers))
	for _, name := range DefaultPrivateContainers {
		out[name] = private
	}
	for _, name := range DefaultPublicContainers {
		out[name] = public
	}
	return out
}

// NewAuthReq builds an authorisation request for app. A nil containers map
// asks for DefaultContainers.
func NewAuthReq(app domain.AppExchangeInfo, appContainer bool, containers map[string]domain.ContainerPermissions) domain.AuthReq {
	if containers == nil {
		containers = DefaultContainers()
	}
	return domain.AuthReq{App: app, AppContainer: appContainer, Containers: containers}
}

// EncodeAuthReq builds the message an app sends to be authorised.
func EncodeAuthReq(reqID uint32, req domain.AuthReq) (string, error) {
	return EncodeMsg(domain.NewReqMsg(reqID, domain.IpcReq{Kind: domain.IpcReqAuth, Auth: &req}))
}
