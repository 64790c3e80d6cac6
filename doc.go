// Package tcssl is an SDK for keeping Tencent Cloud EdgeOne certificates up
// to date through the Tencent Cloud SSL certificate API.
//
// Every call is signed with the TC3-HMAC-SHA256 request signing scheme of
// Tencent Cloud API 3.0. The signing itself lives in [pkg/auth] and has no
// dependencies on the rest of the SDK, so it can be reused for other
// services.
//
// # Overview of Packages
//
//   - tcssl - The main SDK package, wires the options into the service clients
//   - ssl - The client for the SSL certificate service (upload and deploy)
//   - pkg/auth - TC3-HMAC-SHA256 request signing and verification
//   - pkg/tcapi - The response envelope and the error kinds of a call
//
// [pkg/auth]: https://pkg.go.dev/github.com/tc-eo-ssl/sdk/pkg/auth
package tcssl
