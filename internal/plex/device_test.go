package plex

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/mmcdole/plexapi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferredConnection(t *testing.T) {
	remote := Connection{Protocol: "https", Address: "1.2.3.4", Port: "32400", Local: "0"}
	remote2 := Connection{Protocol: "https", Address: "5.6.7.8", Port: "32400", Local: "0"}
	local := Connection{Protocol: "http", Address: "192.168.1.10", Port: "32400", Local: "1"}

	tests := []struct {
		name  string
		conns []Connection
		want  Connection
	}{
		{"local wins regardless of position", []Connection{remote, local}, local},
		{"local first", []Connection{local, remote}, local},
		{"no local falls back to first", []Connection{remote, remote2}, remote},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Device{Name: "pms", Connections: tt.conns}.PreferredConnection()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPreferredConnection_Empty(t *testing.T) {
	_, err := Device{Name: "pms"}.PreferredConnection()
	assert.ErrorIs(t, err, domain.ErrNoConnection)
}

func TestConnectionEndpoint(t *testing.T) {
	tests := []struct {
		name string
		conn Connection
		want string
	}{
		{"full", Connection{Protocol: "https", Address: "10.0.0.2", Port: "32400"}, "https://10.0.0.2:32400"},
		{"default protocol", Connection{Address: "10.0.0.2", Port: "32400"}, "http://10.0.0.2:32400"},
		{"no port", Connection{Protocol: "https", Address: "plex.example.com"}, "https://plex.example.com"},
		{"uri only", Connection{URI: "http://123.213.231:2344"}, "http://123.213.231:2344"},
		{"ipv6 with port", Connection{Address: "::1", Port: "32400"}, "http://[::1]:32400"},
		{"ipv6 link local", Connection{Protocol: "https", Address: "fe80::1c2d:3e4f", Port: "32400"}, "https://[fe80::1c2d:3e4f]:32400"},
		{"ipv6 no port", Connection{Address: "2001:db8::7"}, "http://[2001:db8::7]"},
		{"ipv6 already bracketed", Connection{Address: "[::1]", Port: "32400"}, "http://[::1]:32400"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.conn.Endpoint())
		})
	}
}

func TestDevices_Selection(t *testing.T) {
	container, err := decode[deviceContainer]("devices", fixture(t, "devices.xml"))
	require.NoError(t, err)
	devices := Devices(container.Devices)

	got, err := devices.Select("Name")
	require.NoError(t, err)
	assert.Equal(t, "126713identifier", got.ClientIdentifier)

	_, err = devices.Select("Missing")
	assert.ErrorIs(t, err, domain.ErrDeviceNotFound)

	assert.Len(t, devices.SelectByType(ProductMediaServer), 1)
	assert.Len(t, devices.SelectByType(ProductWeb), 1)
	assert.Empty(t, devices.SelectByType(ProductIOS))
	assert.Equal(t, []string{"Name"}, devices.Servers().Names())
	assert.Equal(t, []string{"Name", "Plex Web (Chrome)"}, devices.Names())
}

func TestClient_DevicesThenConnect(t *testing.T) {
	f := newFakePlex(t)
	u, err := url.Parse(f.srv.URL)
	require.NoError(t, err)

	devicesXML := fmt.Sprintf(`<MediaContainer size="1">
  <Device name="Office" product="Plex Media Server" provides="server" clientIdentifier="abc">
    <Connection protocol="https" address="203.0.113.9" port="32400" uri="https://203.0.113.9:32400" local="0"/>
    <Connection protocol="http" address="%s" port="%s" uri="%s" local="1"/>
  </Device>
</MediaContainer>`, u.Hostname(), u.Port(), f.srv.URL)

	f.handle("/api/resources", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("includeHttps"))
		assert.Equal(t, "1", r.URL.Query().Get("includeRelay"))
		writeXML(w, []byte(devicesXML))
	})
	f.serveFixture("/library", "library.xml")

	c := f.client()
	devices, err := c.Devices(context.Background())
	require.NoError(t, err)
	dev, err := devices.Select("Office")
	require.NoError(t, err)

	server, err := c.Connect(context.Background(), dev)
	require.NoError(t, err)
	assert.Equal(t, "asdasdasdasdas", server.Info.MachineIdentifier)
	assert.Equal(t, f.srv.URL, server.Connection().Endpoint())
	assert.Same(t, c, server.Client())

	// The bound connection is reused for later requests
	_, err = server.Library(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, f.hitCount("/library"))
}

func TestClient_DevicesFreshEachCall(t *testing.T) {
	f := newFakePlex(t)
	f.serveFixture("/api/resources", "devices.xml")
	c := f.client()

	for i := 0; i < 2; i++ {
		devices, err := c.Devices(context.Background())
		require.NoError(t, err)
		assert.Len(t, devices, 2)
	}
	assert.Equal(t, 2, f.hitCount("/api/resources"))
}

func TestClient_ConnectNoConnection(t *testing.T) {
	c := NewClient(testIdentity(), "test-token", WithLogger(discardLogger))

	_, err := c.Connect(context.Background(), Device{Name: "empty"})
	assert.ErrorIs(t, err, domain.ErrNoConnection)
}

func TestClient_ConnectURLInvalid(t *testing.T) {
	c := NewClient(testIdentity(), "test-token", WithLogger(discardLogger))

	_, err := c.ConnectURL(context.Background(), "not a url")
	assert.ErrorIs(t, err, domain.ErrInvalidURL)
}

func TestConnectionEndpoint_IPv6JoinsPaths(t *testing.T) {
	conn := Connection{Address: "fd00::2", Port: "32400"}

	u, err := joinURL(conn.Endpoint(), "/library/sections/1/all", "")
	require.NoError(t, err)
	assert.Equal(t, "http://[fd00::2]:32400/library/sections/1/all", u)
}
