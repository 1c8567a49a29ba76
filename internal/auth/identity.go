package auth

import "github.com/gin-gonic/gin"

// Identity is what an access token asserts about its bearer. A non-empty
// MentorProfileID means the user owned a mentor profile when the token was
// issued, so mentor-side handlers can authorize against it without a
// profile lookup. A profile created after login appears in the next token.
type Identity struct {
	UserID          string
	Email           string
	MentorProfileID string
}

// IsMentor reports whether the token was issued to a mentor profile owner.
func (id Identity) IsMentor() bool {
	return id.MentorProfileID != ""
}

const identityKey = "auth.identity"

func setIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// CallerIdentity returns the identity stored by AuthRequired. On routes
// without the middleware it returns a zero Identity.
func CallerIdentity(c *gin.Context) Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(Identity); ok {
			return id
		}
	}
	return Identity{}
}

// GetUserID is shorthand for CallerIdentity(c).UserID.
func GetUserID(c *gin.Context) string {
	return CallerIdentity(c).UserID
}
