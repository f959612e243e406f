package contextkeys

type contextKey string

const (
	TokenKey     contextKey = "Token"
	UserKey      contextKey = "User"
	RequestIDKey contextKey = "RequestID"
)
