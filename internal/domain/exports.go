package domain

import (
	interfaces "safeapp/internal/domain/interfaces"
	types "safeapp/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	X25519Public           = types.X25519Public
	X25519Private          = types.X25519Private
	Ed25519Public          = types.Ed25519Public
	Ed25519Private         = types.Ed25519Private
	SymmetricKey           = types.SymmetricKey
	Nonce                  = types.Nonce
	XorName                = types.XorName
	AppKeys                = types.AppKeys
	Handle                 = types.Handle
	FfiResult              = types.FfiResult
	DisconnectNotifierFunc = types.DisconnectNotifierFunc
	CompletionFunc         = types.CompletionFunc
	DecodeCompletionFunc   = types.DecodeCompletionFunc
	Permission             = types.Permission
	ContainerPermissions   = types.ContainerPermissions
	BootstrapConfig        = types.BootstrapConfig
	EncInfo                = types.EncInfo
	MDataInfo              = types.MDataInfo
	ContainerInfo          = types.ContainerInfo
	AccessContainerEntry   = types.AccessContainerEntry
	AccessContInfo         = types.AccessContInfo
	AuthGranted            = types.AuthGranted
	AppExchangeInfo        = types.AppExchangeInfo
	AuthReq                = types.AuthReq
	ContainersReq          = types.ContainersReq
	ShareMData             = types.ShareMData
	ShareMDataReq          = types.ShareMDataReq
	IpcReqKind             = types.IpcReqKind
	IpcReq                 = types.IpcReq
	IpcRespKind            = types.IpcRespKind
	IpcResp                = types.IpcResp
	IpcMsgKind             = types.IpcMsgKind
	IpcMsg                 = types.IpcMsg
	IpcErrorKind           = types.IpcErrorKind
	IpcError               = types.IpcError
	UserMetadata           = types.UserMetadata
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	NativeBindings = interfaces.NativeBindings
	AppBindings    = interfaces.AppBindings
	Hello          = interfaces.Hello
	NetworkSession = interfaces.NetworkSession
	NetworkDialer  = interfaces.NetworkDialer
	AuthStore      = interfaces.AuthStore
	BootstrapStore = interfaces.BootstrapStore
)

// Constants and constructors re-exported for callers importing domain only.
const (
	NoHandle = types.NoHandle

	CodeOK                = types.CodeOK
	CodeEncodeDecodeError = types.CodeEncodeDecodeError
	CodeRoutingError      = types.CodeRoutingError
	CodeOperationAborted  = types.CodeOperationAborted
	CodeRequestTimeout    = types.CodeRequestTimeout
	CodeUnexpected        = types.CodeUnexpected
	CodeInvalidArgument   = types.CodeInvalidArgument
	CodeNoSuchHandle      = types.CodeNoSuchHandle

	PermRead              = types.PermRead
	PermInsert            = types.PermInsert
	PermUpdate            = types.PermUpdate
	PermDelete            = types.PermDelete
	PermManagePermissions = types.PermManagePermissions

	IpcReqAuth         = types.IpcReqAuth
	IpcReqContainers   = types.IpcReqContainers
	IpcReqUnregistered = types.IpcReqUnregistered
	IpcReqShareMData   = types.IpcReqShareMData

	IpcRespAuth         = types.IpcRespAuth
	IpcRespContainers   = types.IpcRespContainers
	IpcRespUnregistered = types.IpcRespUnregistered
	IpcRespShareMData   = types.IpcRespShareMData

	IpcMsgReq     = types.IpcMsgReq
	IpcMsgResp    = types.IpcMsgResp
	IpcMsgRevoked = types.IpcMsgRevoked
	IpcMsgErr     = types.IpcMsgErr

	IpcErrAuthDenied             = types.IpcErrAuthDenied
	IpcErrContainersDenied       = types.IpcErrContainersDenied
	IpcErrInvalidMsg             = types.IpcErrInvalidMsg
	IpcErrEncodeDecodeError      = types.IpcErrEncodeDecodeError
	IpcErrAlreadyAuthorised      = types.IpcErrAlreadyAuthorised
	IpcErrUnknownApp             = types.IpcErrUnknownApp
	IpcErrUnexpected             = types.IpcErrUnexpected
	IpcErrStringError            = types.IpcErrStringError
	IpcErrShareMDataDenied       = types.IpcErrShareMDataDenied
	IpcErrInvalidOwner           = types.IpcErrInvalidOwner
	IpcErrIncompatibleMockStatus = types.IpcErrIncompatibleMockStatus
)

var (
	ResultOK = types.ResultOK

	ErrIpcAuthDenied        = types.ErrIpcAuthDenied
	ErrIpcContainersDenied  = types.ErrIpcContainersDenied
	ErrIpcInvalidMsg        = types.ErrIpcInvalidMsg
	ErrIpcEncodeDecodeError = types.ErrIpcEncodeDecodeError
	ErrIpcUnknownApp        = types.ErrIpcUnknownApp
	ErrIpcShareMDataDenied  = types.ErrIpcShareMDataDenied

	NewContainerPermissions = types.NewContainerPermissions
	ParsePermissions        = types.ParsePermissions
	NewIpcError             = types.NewIpcError
	IpcErrorKindForCode     = types.IpcErrorKindForCode
	NewReqMsg               = types.NewReqMsg
	NewRespMsg              = types.NewRespMsg
	NewRevokedMsg           = types.NewRevokedMsg
	NewErrMsg               = types.NewErrMsg
)
