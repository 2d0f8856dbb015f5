package handlers

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/cristalhq/jwt/v4"

	appErrors "github.com/TanmaySingh007/StayFinder/errors"
)

var (
	jwtKey      = []byte(os.Getenv("SECRET_KEY"))
	verifier, _ = jwt.NewVerifierHS(jwt.HS256, jwtKey)
)

func parseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse([]byte(tokenString), verifier)
	if err != nil {
		log.Println(appErrors.InvalidTokenError, err)
		return nil, err
	}
	return token, nil
}

func extractClaims(token *jwt.Token) map[string]string {
	var claims map[string]string

	err := jwt.ParseClaims(token.Bytes(), verifier, &claims)
	if err != nil {
		log.Println(err)
	}

	return claims
}

// extractRequester resolves the authenticated guest from the bearer token.
// An empty result means the request is unauthenticated; the booking service
// turns that into its own reason code.
func extractRequester(r *http.Request) string {
	bearer := r.Header.Get("Authorization")
	if bearer == "" {
		return ""
	}

	bearerToken := strings.Split(bearer, "Bearer ")
	if len(bearerToken) != 2 {
		return ""
	}

	token, err := parseToken(bearerToken[1])
	if err != nil {
		return ""
	}

	claims := extractClaims(token)
	return claims["userId"]
}
