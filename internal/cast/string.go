package cast

import (
	"encoding/base64"
	"net/url"
	"regexp"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

func castString(opts Options, raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, invalid("not a string", raw)
	}
	switch opts.format() {
	case "email":
		if !emailPattern.MatchString(s) {
			return nil, invalid("not an email address", raw)
		}
	case "uri":
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" {
			return nil, invalid("not an absolute uri", raw)
		}
	case "uuid":
		if _, err := uuid.Parse(s); err != nil {
			return nil, invalid("not a uuid", raw)
		}
	case "binary":
		if _, err := base64.StdEncoding.DecodeString(s); err != nil {
			return nil, invalid("not base64", raw)
		}
	}
	return s, nil
}
