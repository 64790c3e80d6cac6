package auth

import (
	"bufio"
	"bytes"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	qt "github.com/frankban/quicktest"
)

const goldenSignature = "a606500005f2a78c4bf30cc59946313f542e60fa0a350828a7d3fda867b26e6b"

func goldenRequest() *Request {
	return &Request{
		Credential: Credential{SecretID: "AKIDtest", SecretKey: "testkey"},
		Service:    "ssl",
		Host:       "ssl.tencentcloudapi.com",
		Action:     "UploadCertificate",
		Version:    "2019-12-05",
		Payload:    []byte("{}"),
	}
}

func TestCanonicalRequest(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	got := CanonicalRequest(goldenRequest())
	c.Assert(got, qt.Equals, "POST\n"+
		"/\n"+
		"\n"+
		"content-type:application/json; charset=utf-8\n"+
		"host:ssl.tencentcloudapi.com\n"+
		"x-tc-action:uploadcertificate\n"+
		"\n"+
		"content-type;host;x-tc-action\n"+
		"44136fa355b3678a1146ad16f7e8649e94fb4fc21fe77e8310c060f61caaff8a")
}

func TestCanonicalRequest_ActionCasing(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	for _, action := range []string{"UploadCertificate", "uploadcertificate", "UPLOADCERTIFICATE", "uPlOaDcErTiFiCaTe"} {
		req := goldenRequest()
		req.Action = action

		lines := strings.Split(CanonicalRequest(req), "\n")
		c.Assert(lines, qt.HasLen, 9, qt.Commentf("action %q", action))
		c.Assert(lines[3:7], qt.DeepEquals, []string{
			"content-type:application/json; charset=utf-8",
			"host:ssl.tencentcloudapi.com",
			"x-tc-action:uploadcertificate",
			"",
		}, qt.Commentf("action %q", action))

		// The outbound header keeps the caller's casing
		headers := SignAt(req, time.Unix(1704067200, 0))
		c.Assert(headers.Action, qt.Equals, action)
	}
}

func TestStringToSign(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	got := StringToSign(CanonicalRequest(goldenRequest()), "ssl", "2024-01-01", 1704067200)
	c.Assert(got, qt.Equals, "TC3-HMAC-SHA256\n"+
		"1704067200\n"+
		"2024-01-01/ssl/tc3_request\n"+
		"3bd80f8ed4cd490161140f9c6114094a5698e5352b732b22a57c7b231b28232f")
}

func TestSign_KnownAnswer(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	headers := SignAt(goldenRequest(), time.Unix(1704067200, 0))
	c.Assert(headers.Authorization, qt.Equals, "TC3-HMAC-SHA256 "+
		"Credential=AKIDtest/2024-01-01/ssl/tc3_request, "+
		"SignedHeaders=content-type;host;x-tc-action, "+
		"Signature="+goldenSignature)
	c.Assert(headers.Timestamp, qt.Equals, "1704067200")
	c.Assert(headers.ContentType, qt.Equals, "application/json; charset=utf-8")
	c.Assert(headers.Host, qt.Equals, "ssl.tencentcloudapi.com")
	c.Assert(headers.Version, qt.Equals, "2019-12-05")
}

func TestDeriveSignature_Chain(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	stringToSign := StringToSign(CanonicalRequest(goldenRequest()), "ssl", "2024-01-01", 1704067200)
	c.Assert(DeriveSignature("testkey", "ssl", "2024-01-01", stringToSign), qt.Equals, goldenSignature)

	// Intermediate keys of the chain
	secretDate := hmacHex([]byte("TC3testkey"), "2024-01-01")
	c.Assert(secretDate, qt.Equals, "4e02465f39f0db558b15bd6370adf35ff95a35d00b9b4e031dc034301b36de65")
	secretService := hmacHex(mustDecodeHex(secretDate), "ssl")
	c.Assert(secretService, qt.Equals, "097a880ed18eabb3b04f6ff36f547395fb444ec8b99d4afbe4d7730642203777")
	secretSigning := hmacHex(mustDecodeHex(secretService), "tc3_request")
	c.Assert(secretSigning, qt.Equals, "893b78af0b510d97e4332cf079c74122b5b7e9bc3af04e0ec5f5f338a7a15ce4")
}

func TestSign_Deterministic(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	mockClock := clock.NewMock()
	mockClock.Set(time.Date(2024, 3, 9, 23, 59, 59, 0, time.UTC))

	first := Sign(goldenRequest(), mockClock)
	second := Sign(goldenRequest(), mockClock)
	c.Assert(second.Authorization, qt.Equals, first.Authorization)
	c.Assert(second.Equal(first), qt.IsTrue)

	// A second later the timestamp is part of the string to sign
	mockClock.Add(time.Second)
	third := Sign(goldenRequest(), mockClock)
	c.Assert(third.Authorization, qt.Not(qt.Equals), first.Authorization)
	c.Assert(third.Authorization, qt.Contains, "Credential=AKIDtest/2024-03-10/ssl/tc3_request")
}

func TestSign_Concurrent(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	const workers = 16
	const rounds = 50

	at := time.Unix(1704067200, 0)
	results := make([][]string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				results[i] = append(results[i], SignAt(goldenRequest(), at).Authorization)
			}
		}(i)
	}
	wg.Wait()

	want := "TC3-HMAC-SHA256 Credential=AKIDtest/2024-01-01/ssl/tc3_request, " +
		"SignedHeaders=content-type;host;x-tc-action, Signature=" + goldenSignature
	for i, signed := range results {
		c.Assert(signed, qt.HasLen, rounds, qt.Commentf("worker %d", i))
		for _, got := range signed {
			c.Assert(got, qt.Equals, want, qt.Commentf("worker %d", i))
		}
	}
}

func TestSign_PayloadAvalanche(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	at := time.Unix(1704067200, 0)
	base := &Request{
		Credential: Credential{SecretID: "AKIDtest", SecretKey: "testkey"},
		Service:    "ssl",
		Host:       "ssl.tencentcloudapi.com",
		Action:     "DeployCertificateInstance",
		Version:    "2019-12-05",
		Payload:    []byte(`{"CertificateId":"abc","InstanceIdList":["example.com"],"ResourceType":"teo"}`),
	}
	want := SignAt(base, at).Authorization

	for i := range base.Payload {
		mutated := *base
		mutated.Payload = append([]byte(nil), base.Payload...)
		mutated.Payload[i] ^= 0x01

		got := SignAt(&mutated, at).Authorization
		c.Assert(got, qt.Not(qt.Equals), want, qt.Commentf("flipping byte %d did not change the signature", i))
	}
}

func TestSign_UTCDate(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	// 2024-01-01 07:00 in UTC+8 is still 2023-12-31 in UTC
	shanghai := time.FixedZone("CST", 8*60*60)
	headers := SignAt(goldenRequest(), time.Date(2024, 1, 1, 7, 0, 0, 0, shanghai))
	c.Assert(headers.Authorization, qt.Contains, "/2023-12-31/ssl/tc3_request")
}

func TestHeaders_Token(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	req := goldenRequest()
	header := make(http.Header)
	SignAt(req, time.Unix(1704067200, 0)).Apply(header)
	_, present := header["X-Tc-Token"]
	c.Assert(present, qt.IsFalse)
	c.Assert(header.Get("X-TC-Region"), qt.Equals, "")
	_, regionPresent := header["X-Tc-Region"]
	c.Assert(regionPresent, qt.IsTrue)

	req.Credential.Token = "session-token"
	SignAt(req, time.Unix(1704067200, 0)).Apply(header)
	c.Assert(header.Get("X-TC-Token"), qt.Equals, "session-token")
}

func TestSign_ViaWireFormat(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	mockClock := clock.NewMock()
	mockClock.Set(time.Now())
	mockClock.Add(-2 * time.Minute)

	req := goldenRequest()
	headers := Sign(req, mockClock)

	// Run the header through the wire format to ensure that it doesn't cause an issue
	// and then parse the signing components back out of that header
	received := viaWireFormat(c, headers)
	secretID, date, service, timestamp, signature, err := received.SigningComponents()
	c.Assert(err, qt.IsNil, qt.Commentf("got an error parsing the signing components"))

	c.Assert(secretID, qt.Equals, "AKIDtest", qt.Commentf("secretID does not match"))
	c.Assert(service, qt.Equals, "ssl", qt.Commentf("service does not match"))
	c.Assert(date, qt.Equals, mockClock.Now().UTC().Format("2006-01-02"), qt.Commentf("date does not match"))
	c.Assert(timestamp.Unix(), qt.Equals, mockClock.Now().Unix(), qt.Commentf("timestamp was not now"))
	c.Assert(signature, qt.HasLen, 64)

	// Now resign the request with the retrieved signing components to check we can verify it
	newHeaders := SignAt(req, timestamp)
	c.Assert(newHeaders.Equal(received), qt.IsTrue, qt.Commentf("resigned headers do not match"))
}

// viaWireFormat writes the headers into a raw HTTP request and reads them back,
// making sure that the wire format doesn't cause an issue with the signing.
func viaWireFormat(c *qt.C, headers *Headers) *Headers {
	httpHeaders := make(http.Header)
	headers.Apply(httpHeaders)
	httpHeaders.Del("Host")

	var buf bytes.Buffer
	buf.Write([]byte(
		"POST / HTTP/1.1\r\n" +
			"Host: " + headers.Host + "\r\n",
	))
	c.Assert(httpHeaders.Write(&buf), qt.IsNil, qt.Commentf("got an error writing the headers"))
	buf.Write([]byte("\r\n"))

	request, err := http.ReadRequest(bufio.NewReader(&buf))
	c.Assert(err, qt.IsNil, qt.Commentf("got an error reading the request"))

	return HeadersFromRequest(request)
}
