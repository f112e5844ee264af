package plex

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/mmcdole/plexapi/internal/domain"
)

// Product names reported by common Plex devices
const (
	ProductMediaServer = "Plex Media Server"
	ProductWeb         = "Plex Web"
	ProductMediaPlayer = "Plex Media Player"
	ProductIOS         = "Plex for iOS"
)

// Devices is the device list of an account, in the order plex.tv returned it
type Devices []Device

// Select returns the device named name.
func (d Devices) Select(name string) (Device, error) {
	for _, dev := range d {
		if dev.Name == name {
			return dev, nil
		}
	}
	return Device{}, fmt.Errorf("%w: %q", domain.ErrDeviceNotFound, name)
}

// SelectByType returns the devices whose product is product, e.g. ProductMediaServer.
func (d Devices) SelectByType(product string) Devices {
	var out Devices
	for _, dev := range d {
		if dev.Product == product {
			out = append(out, dev)
		}
	}
	return out
}

// Servers returns the devices that provide the server role.
func (d Devices) Servers() Devices {
	var out Devices
	for _, dev := range d {
		if dev.Provides("server") {
			out = append(out, dev)
		}
	}
	return out
}

// Names returns the device names in list order.
func (d Devices) Names() []string {
	names := make([]string, len(d))
	for i, dev := range d {
		names[i] = dev.Name
	}
	return names
}

// Provides reports whether role appears in the device's provides list.
func (d Device) Provides(role string) bool {
	for _, p := range strings.Split(d.ProvidesList, ",") {
		if strings.TrimSpace(p) == role {
			return true
		}
	}
	return false
}

// PreferredConnection picks the first local connection, falling back to the
// first connection in list order.
func (d Device) PreferredConnection() (Connection, error) {
	if len(d.Connections) == 0 {
		return Connection{}, fmt.Errorf("%w: %q", domain.ErrNoConnection, d.Name)
	}
	for _, conn := range d.Connections {
		if conn.IsLocal() {
			return conn, nil
		}
	}
	return d.Connections[0], nil
}

// IsLocal reports whether the connection is on the local network.
func (c Connection) IsLocal() bool {
	return c.Local == "1"
}

// Endpoint returns the absolute base URL of the connection: protocol,
// address and port when an address is known, the literal uri otherwise.
func (c Connection) Endpoint() string {
	if c.Address == "" {
		return c.URI
	}
	protocol := c.Protocol
	if protocol == "" {
		protocol = "http"
	}
	host := strings.TrimSuffix(strings.TrimPrefix(c.Address, "["), "]")
	if c.Port != "" {
		return protocol + "://" + net.JoinHostPort(host, c.Port)
	}
	if strings.Contains(host, ":") {
		// IPv6 literal
		return protocol + "://[" + host + "]"
	}
	return protocol + "://" + host
}

// Devices lists the devices registered to the client's account.
// Every call fetches a fresh list.
func (c *Client) Devices(ctx context.Context) (Devices, error) {
	container, err := Execute(ctx, c, c.devicesRequest())
	if err != nil {
		return nil, err
	}
	c.logger.Debug("plex devices listed", "count", len(container.Devices))
	return Devices(container.Devices), nil
}

// Connect reaches device over its preferred connection. The returned Server
// keeps using that connection for every later request.
func (c *Client) Connect(ctx context.Context, device Device) (*Server, error) {
	conn, err := device.PreferredConnection()
	if err != nil {
		return nil, err
	}
	c.logger.Debug("plex connecting", "device", device.Name, "endpoint", conn.Endpoint(), "local", conn.IsLocal())
	return c.connect(ctx, conn)
}

// ConnectURL reaches a server at a known base URL, e.g. http://127.0.0.1:32400.
func (c *Client) ConnectURL(ctx context.Context, endpoint string) (*Server, error) {
	return c.connect(ctx, Connection{URI: endpoint})
}

func (c *Client) connect(ctx context.Context, conn Connection) (*Server, error) {
	req, err := c.connectRequest(conn.Endpoint())
	if err != nil {
		return nil, err
	}
	info, err := Execute(ctx, c, req)
	if err != nil {
		return nil, err
	}
	return &Server{Info: info, client: c, conn: conn}, nil
}
