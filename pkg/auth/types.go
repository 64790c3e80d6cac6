package auth

// Credential is a Tencent Cloud API key pair, optionally paired with a
// temporary session token. It contains secret material so care must be
// taken to never log it.
type Credential struct {
	SecretID  string `json:"secret_id"`
	SecretKey string `json:"secret_key" sensitive:"true"`
	Token     string `json:"token,omitempty" sensitive:"true"` // Only set for temporary credentials
}

// Request is everything that is covered by a TC3 signature.
//
// The payload is signed as an opaque byte string; it must be exactly the
// bytes that are sent as the request body.
type Request struct {
	Credential Credential
	Service    string // The service name, e.g. "ssl"
	Host       string // The API host, e.g. "ssl.tencentcloudapi.com"
	Region     string // May be empty for regionless services
	Action     string // The API action, e.g. "UploadCertificate"
	Version    string // The API version, e.g. "2019-12-05"
	Payload    []byte
}
