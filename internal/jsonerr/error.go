package jsonerr

import (
	"errors"
	"net/http"

	"github.com/tc-eo-ssl/sdk/pkg/tcapi"
)

// Error writes err to w as a Tencent Cloud response envelope.
// The given status code is used if it is non-zero, otherwise it
// is set to 200 as the provider reports errors inside the body.
//
// If err is a *tcapi.APIError its code and message are written
// verbatim, otherwise the code is "InternalError".
//
// If err is nil it writes an envelope holding only the request id:
//
//	{"Response": {"RequestId": "..."}}
func Error(w http.ResponseWriter, requestID string, err error, code int) {
	if code == 0 {
		code = http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	resp := &tcapi.Response[struct{}]{RequestID: requestID}
	if err == nil {
		resp.Data = &struct{}{}
	} else {
		var apiErr *tcapi.APIError
		if !errors.As(err, &apiErr) {
			apiErr = &tcapi.APIError{Code: "InternalError", Message: err.Error()}
		}
		resp.Error = apiErr
	}

	data, _ := json.Marshal(&tcapi.Envelope[struct{}]{Response: resp})
	w.WriteHeader(code)
	_, _ = w.Write(data)
}
