package contracts

import (
	"context"
	"fmt"
	"strings"
)

type TrustAnchorKind int

const (
	NoTrustAnchor TrustAnchorKind = iota
	ExplicitTrustAnchor
	RemoteTrustAnchor
)

type TrustAnchor struct {
	Kind     TrustAnchorKind
	Location string
}

func Explicit(path string) TrustAnchor { return TrustAnchor{Kind: ExplicitTrustAnchor, Location: path} }
func Remote(host string) TrustAnchor   { return TrustAnchor{Kind: RemoteTrustAnchor, Location: host} }

// SelectTrustAnchor prefers an explicit key path over a repository host.
func SelectTrustAnchor(path, host string) TrustAnchor {
	if path = strings.TrimSpace(path); path != "" {
		return Explicit(path)
	}
	if host = strings.TrimSpace(host); host != "" {
		return Remote(host)
	}
	return TrustAnchor{}
}

func (this TrustAnchor) String() string {
	switch this.Kind {
	case ExplicitTrustAnchor:
		return fmt.Sprintf("file %q", this.Location)
	case RemoteTrustAnchor:
		return fmt.Sprintf("host %q", this.Location)
	default:
		return "none"
	}
}

const IdentityEndpointPath = "/api/v1/repository/identity"

type IdentitySource interface {
	FetchIdentity(ctx context.Context, host string) ([]byte, error)
}
