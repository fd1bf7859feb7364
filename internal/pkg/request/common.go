package request

// ByUserIDBody is used by the list-by-user endpoints. The original client sends
// the key both as "userid" and "userId" depending on the page, so both are bound.
type ByUserIDBody struct {
	UserID    string `json:"userid"`
	UserIDAlt string `json:"userId"`
}

// Resolve returns whichever user id field was populated.
func (b *ByUserIDBody) Resolve() string {
	if b.UserID != "" {
		return b.UserID
	}
	return b.UserIDAlt
}
