package scrapingbee

import (
	"mime"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// excerptLimit bounds the error-body excerpt surfaced for diagnosis.
const excerptLimit = 512

// statusKinds maps upstream status codes to error kinds. Kept as a table so
// the quota signal can be re-pointed if the upstream changes it.
var statusKinds = map[int]Kind{
	http.StatusUnauthorized:        KindAuth,
	http.StatusForbidden:           KindAuth,
	http.StatusTooManyRequests:     KindQuota,
	http.StatusBadRequest:          KindInvalidRequest,
	http.StatusUnprocessableEntity: KindInvalidRequest,
}

// classify maps a raw upstream response into the error taxonomy.
// Returns nil for 2xx.
func classify(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	kind, ok := statusKinds[status]
	if !ok {
		if status >= 500 {
			kind = KindUpstreamUnavailable
		} else {
			kind = KindUnknown
		}
	}
	return newError(kind, status, upstreamMessage(body))
}

// upstreamMessage pulls the message field out of JSON error bodies,
// falling back to a truncated raw excerpt.
func upstreamMessage(body []byte) string {
	if m := gjson.GetBytes(body, "message"); m.Exists() {
		return m.String()
	}
	return excerpt(body)
}

func excerpt(body []byte) string {
	if len(body) > excerptLimit {
		body = body[:excerptLimit]
	}
	return string(body)
}

// sniffContentKind decides how a scrape body is handled from the declared
// content type. A URL may yield HTML or a binary file, so the decision is
// made post-hoc from response headers rather than from the request.
func sniffContentKind(contentType string) ContentKind {
	if contentType == "" {
		return ContentOther
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ContentOther
	}
	switch {
	case strings.HasPrefix(mt, "text/"),
		mt == "application/json",
		mt == "application/xml",
		mt == "application/javascript",
		strings.HasSuffix(mt, "+json"),
		strings.HasSuffix(mt, "+xml"):
		return ContentHTMLText
	default:
		// application/pdf, image/*, octet-stream and every other declared
		// non-text type: keep raw bytes intact
		return ContentBinaryDocument
	}
}
