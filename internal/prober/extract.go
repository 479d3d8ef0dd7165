package prober

import (
	"mime"
	"regexp"
	"strings"

	"github.com/sl4desec/subpeek/internal/httpclient"
	"github.com/sl4desec/subpeek/internal/models"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

var titleRegex = regexp.MustCompile(`(?i)<title>(.*?)</title>`)

func applyResponse(fp *models.Fingerprint, resp *httpclient.HTTPResponse) {
	fp.StatusCode = models.IntPtr(resp.StatusCode)

	if server, ok := resp.Header("Server"); ok {
		fp.Server = models.StringPtr(server)
	}

	if resp.ContentLength >= 0 {
		fp.ContentLength = models.Int64Ptr(resp.ContentLength)
	}
	if resp.Incomplete {
		return
	}

	contentType, _ := resp.Header("Content-Type")
	body := DecodeBody(resp.Body, contentType)
	if fp.ContentLength == nil {
		fp.ContentLength = models.Int64Ptr(int64(len(body)))
	}

	if title, ok := ExtractTitle(body); ok {
		fp.Title = models.StringPtr(title)
	}
}

// DecodeBody converts body to UTF-8 using the charset declared in
// contentType. Without a known declared charset the body is taken as UTF-8
// and invalid sequences become U+FFFD.
func DecodeBody(body []byte, contentType string) string {
	if enc := declaredEncoding(contentType); enc != nil {
		if decoded, err := enc.NewDecoder().Bytes(body); err == nil {
			return string(decoded)
		}
	}
	return strings.ToValidUTF8(string(body), "\uFFFD")
}

func declaredEncoding(contentType string) encoding.Encoding {
	if contentType == "" {
		return nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil
	}
	label, ok := params["charset"]
	if !ok {
		return nil
	}
	enc, _ := charset.Lookup(label)
	return enc
}

// ExtractTitle returns the trimmed text of the first <title> element.
// A present but empty title yields ("", true).
func ExtractTitle(body string) (string, bool) {
	match := titleRegex.FindStringSubmatch(body)
	if match == nil {
		return "", false
	}
	return strings.TrimSpace(match[1]), true
}
