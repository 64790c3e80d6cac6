package ssl

import (
	"github.com/tc-eo-ssl/sdk/internal/client"
)

const (
	// Service is the service name used in the credential scope.
	Service = "ssl"
	// Version is the API version of the certificate actions.
	Version = "2019-12-05"

	// Host is the endpoint of the China site.
	Host = "ssl.tencentcloudapi.com"
	// IntlHost is the endpoint of the international site.
	IntlHost = "ssl.intl.tencentcloudapi.com"
)

// HostFor returns the endpoint for the international or China site.
func HostFor(international bool) string {
	if international {
		return IntlHost
	}
	return Host
}

// Client is the SDK for the SSL certificate service.
type Client struct {
	client *client.Client
}

func NewClient(client *client.Client) *Client {
	return &Client{client}
}
