package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte("carewatch-dev-secret")

// SetJWTSecret replaces the signing key. Called once from main before any
// token is issued or verified.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

// GenerateToken issues an HS256 token carrying the user's role and, when the
// account is bound to one, the patient or doctor it scopes to. Embedding the
// ids lets ownership checks run without a DB lookup.
func GenerateToken(userID int, role string, patientID, doctorID *int, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"uid":  userID,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	if patientID != nil {
		claims["patient_id"] = *patientID
	}
	if doctorID != nil {
		claims["doctor_id"] = *doctorID
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token missing"})
			return
		}
		token, err := jwt.Parse(auth[7:], func(t *jwt.Token) (interface{}, error) {
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		claims := token.Claims.(jwt.MapClaims)
		c.Set("user_id", intClaim(claims, "uid"))
		c.Set("role", claims["role"].(string))
		if _, ok := claims["patient_id"]; ok {
			c.Set("patient_id", intClaim(claims, "patient_id"))
		}
		if _, ok := claims["doctor_id"]; ok {
			c.Set("doctor_id", intClaim(claims, "doctor_id"))
		}

		c.Next()
	}
}

// RequireRole rejects authenticated requests whose role claim is not in the
// allowed set. Must run after JWTAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

func intClaim(claims jwt.MapClaims, key string) int {
	if f, ok := claims[key].(float64); ok {
		return int(f)
	}
	return 0
}
