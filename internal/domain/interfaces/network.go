package interfaces

import "context"

// Hello introduces a client to a gateway.
type Hello struct {
	// SignPk is the hex encoded public signing key of the client.
	SignPk string `json:"sign_pk"`
	// AppID is empty for unregistered clients.
	AppID string `json:"app_id,omitempty"`
	// Sig is the hex encoded Ed25519 signature over SignPk and AppID.
	Sig string `json:"sig"`
}

// NetworkSession is a live connection to one gateway.
type NetworkSession interface {
	ID() string
	Contact() string
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// NetworkDialer opens sessions against bootstrap contacts.
type NetworkDialer interface {
	Dial(ctx context.Context, contacts []string, hello Hello) (NetworkSession, error)
}
