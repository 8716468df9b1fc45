package tableschema

// MissingValues is the ordered set of raw tokens that denote an absent value.
type MissingValues []string

// IsMissing reports whether raw denotes absence. A nil raw value is always
// missing; other non-string values never match a sentinel.
func (m MissingValues) IsMissing(raw any) bool {
	if raw == nil {
		return true
	}
	s, ok := raw.(string)
	if !ok {
		return false
	}
	for _, token := range m {
		if s == token {
			return true
		}
	}
	return false
}
