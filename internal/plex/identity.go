package plex

import (
	"fmt"
	"net/http"
	"os"
	"runtime"

	"github.com/google/uuid"
)

// Header names understood by Plex servers and plex.tv
const (
	HeaderPlatform         = "X-Plex-Platform"
	HeaderPlatformVersion  = "X-Plex-Platform-Version"
	HeaderProvides         = "X-Plex-Provides"
	HeaderClientIdentifier = "X-Plex-Client-Identifier"
	HeaderProduct          = "X-Plex-Product"
	HeaderVersion          = "X-Plex-Version"
	HeaderDevice           = "X-Plex-Device"
	HeaderToken            = "X-Plex-Token"
	HeaderContainerStart   = "X-Plex-Container-Start"
	HeaderContainerSize    = "X-Plex-Container-Size"
)

// Identity is the fixed set of values identifying this client to Plex.
// Build it once at startup; every request reuses it.
type Identity struct {
	Platform         string
	PlatformVersion  string
	Product          string
	Version          string
	Device           string
	ClientIdentifier string
	Provides         string
}

// NewIdentity inspects the local platform and derives a client identifier
// that is stable for this host across runs.
func NewIdentity(product, version string) (Identity, error) {
	host, err := os.Hostname()
	if err != nil {
		return Identity{}, fmt.Errorf("failed to inspect hostname: %w", err)
	}

	platformVersion, err := kernelRelease()
	if err != nil {
		return Identity{}, fmt.Errorf("failed to inspect platform version: %w", err)
	}

	return Identity{
		Platform:         platformName(runtime.GOOS),
		PlatformVersion:  platformVersion,
		Product:          product,
		Version:          version,
		Device:           host,
		ClientIdentifier: uuid.NewSHA1(uuid.NameSpaceDNS, []byte(host+"."+product)).String(),
		Provides:         "controller",
	}, nil
}

// WithClientIdentifier returns a copy of the identity using id, e.g. one
// persisted in the config file. An empty id keeps the derived identifier.
func (i Identity) WithClientIdentifier(id string) Identity {
	if id != "" {
		i.ClientIdentifier = id
	}
	return i
}

// Headers returns the identification headers, plus the token header when a
// token is present. The result is a fresh map the caller may modify.
func (i Identity) Headers(token string) http.Header {
	h := make(http.Header, 9)
	h.Set("Accept", "application/xml")
	h.Set(HeaderPlatform, i.Platform)
	h.Set(HeaderPlatformVersion, i.PlatformVersion)
	h.Set(HeaderProduct, i.Product)
	h.Set(HeaderVersion, i.Version)
	h.Set(HeaderDevice, i.Device)
	h.Set(HeaderClientIdentifier, i.ClientIdentifier)
	if i.Provides != "" {
		h.Set(HeaderProvides, i.Provides)
	}
	if token != "" {
		h.Set(HeaderToken, token)
	}
	return h
}

// platformName maps GOOS to the names Plex clients usually report
func platformName(goos string) string {
	switch goos {
	case "darwin":
		return "MacOSX"
	case "linux":
		return "Linux"
	case "windows":
		return "Windows"
	case "freebsd":
		return "FreeBSD"
	default:
		return goos
	}
}
