package redisrepo

import "fmt"

const (
	SESSION_KEY       = "session:%s"       // <sessionID>
	USER_SESSIONS_KEY = "user-sessions:%s" // <userID>
)

func SessionKey(sessionID string) string {
	return fmt.Sprintf(SESSION_KEY, sessionID)
}

func UserSessionsKey(userID string) string {
	return fmt.Sprintf(USER_SESSIONS_KEY, userID)
}
