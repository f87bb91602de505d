package utils

import (
	"fmt"
	"strconv"
	"time"

	"kos-booking/types"

	"github.com/gofiber/fiber/v2"
)

// isoDateLayouts are the accepted formats for client-supplied dates, bare
// calendar dates first.
var isoDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// ParseISODate parses a client-supplied ISO date string in UTC.
func ParseISODate(value string) (time.Time, error) {
	for _, layout := range isoDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO date: %q", value)
}

// FormatRupiah renders a monthly price as "Rp 1.250.000" with dot thousands
// separators.
func FormatRupiah(amount int) string {
	s := strconv.Itoa(amount)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	if neg {
		return "Rp -" + string(out)
	}
	return "Rp " + string(out)
}

// SanitizedLogEntry builds a request/response log entry with deep copies of
// the fasthttp buffers, which are recycled after the handler returns.
func SanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	requestBody := string(append([]byte(nil), c.Body()...))
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          string([]byte(c.Method())),
		URL:             string([]byte(c.OriginalURL())),
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}

// ParamUint parses a positive integer route parameter.
func ParamUint(value string) (uint, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("must be a positive number")
	}
	return uint(n), nil
}
