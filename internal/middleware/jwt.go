package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/study-dashboard/internal/client"
)

// Locals populated by BearerToken and read by the sidebar.
const (
	LocalStudentName = "StudentName"
	LocalStudentID   = "StudentID"
)

// AuthCookie carries the bearer token for browser sessions.
const AuthCookie = "auth_token"

// BearerToken forwards the caller's bearer token to backend calls and
// exposes the student's name and id claims to the views. The token is not
// verified here; the backend owns authentication.
func BearerToken() fiber.Handler {
	parser := jwt.NewParser()

	return func(c *fiber.Ctx) error {
		name, studentID := "", ""

		if token := bearerToken(c); token != "" {
			c.SetUserContext(client.WithToken(c.UserContext(), token))
			name, studentID = studentClaims(parser, token)
		}

		c.Locals(LocalStudentName, name)
		c.Locals(LocalStudentID, studentID)

		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	const bearer = "bearer "

	authorization := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(authorization) > len(bearer) && strings.EqualFold(authorization[:len(bearer)], bearer) {
		return strings.TrimSpace(authorization[len(bearer):])
	}

	return strings.TrimSpace(c.Cookies(AuthCookie))
}

// studentClaims reads display claims from token. Opaque tokens yield empty values.
func studentClaims(parser *jwt.Parser, token string) (string, string) {
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return "", ""
	}

	return claimString(claims, "name"), claimString(claims, "student_id", "studentId", "sub")
}

func claimString(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		switch v := claims[key].(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}
