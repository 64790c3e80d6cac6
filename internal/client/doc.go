// Package client provides a generic client for calling Tencent Cloud API 3.0
// services: every call is signed with TC3-HMAC-SHA256, sent as a JSON POST and
// its response envelope decoded.
package client
