// Package tcapi contains the wire-level types shared by every Tencent Cloud
// API 3.0 call: the response envelope and the kinds of error a call can end
// with.
//
// Every response body has the shape
//
//	{"Response": {"Error": {"Code": "...", "Message": "..."}, "RequestId": "..."}}
//
// on failure, or
//
//	{"Response": {"RequestId": "...", <operation fields>...}}
//
// on success. The operation specific fields are flattened into the same
// object as RequestId rather than nested, so [Response] implements its own
// JSON encoding.
package tcapi
