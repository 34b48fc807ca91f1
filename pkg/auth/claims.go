package auth

import (
	"github.com/dattendance/attendance-backend/pkg/db/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Role   models.Role
	Epoch  string
	JTI    string
}

// AccessTokenClaims represents the typed JWT issued to clients. Epoch pins
// the token to the server process that minted it; a restarted server rejects
// tokens carrying an older epoch.
type AccessTokenClaims struct {
	UserID uuid.UUID   `json:"user_id"`
	Role   models.Role `json:"role"`
	Epoch  string      `json:"epoch"`
	jwt.RegisteredClaims
}
