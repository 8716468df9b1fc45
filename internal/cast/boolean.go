package cast

import "strings"

var (
	trueTokens  = map[string]struct{}{"true": {}, "yes": {}, "y": {}, "t": {}, "1": {}, "on": {}}
	falseTokens = map[string]struct{}{"false": {}, "no": {}, "n": {}, "f": {}, "0": {}, "off": {}}
)

func castBoolean(_ Options, raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		token := strings.ToLower(v)
		if _, ok := trueTokens[token]; ok {
			return true, nil
		}
		if _, ok := falseTokens[token]; ok {
			return false, nil
		}
	}
	return nil, invalid("not a boolean", raw)
}
