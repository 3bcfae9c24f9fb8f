package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/picineiros/pool-manager/internal/models"
)

const (
	PurposeEmailVerify   = "email_verify"
	PurposePasswordReset = "password_reset"
)

// StateTokenGenerator produz os tokens dos links de verificação de email e
// de reset de senha. O token é derivado do estado mutável do usuário (hash
// da senha e último login) em vez de ser armazenado: trocar a senha ou
// fazer login invalida implicitamente qualquer token emitido antes, sem
// precisar de tabela de tokens. A flag de verificação fica de fora do hash
// para que reusar o mesmo link de verificação continue sendo idempotente.
//
// Formato: <timestamp base36>-<hmac-sha256 truncado>.
type StateTokenGenerator struct {
	secret []byte
	ttl    time.Duration

	// Relógio substituível nos testes.
	now func() time.Time
}

func NewStateTokenGenerator(secret string, ttl time.Duration) *StateTokenGenerator {
	return &StateTokenGenerator{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (g *StateTokenGenerator) Make(u *models.User, purpose string) string {
	ts := g.now().Unix()
	return fmt.Sprintf("%s-%s", strconv.FormatInt(ts, 36), g.signature(u, purpose, ts))
}

func (g *StateTokenGenerator) Check(u *models.User, purpose, token string) bool {
	if u == nil || token == "" {
		return false
	}

	parts := strings.SplitN(token, "-", 2)
	if len(parts) != 2 {
		return false
	}

	ts, err := strconv.ParseInt(parts[0], 36, 64)
	if err != nil {
		return false
	}

	issued := time.Unix(ts, 0)
	now := g.now()
	if issued.After(now) || now.Sub(issued) > g.ttl {
		return false
	}

	want := g.signature(u, purpose, ts)
	return hmac.Equal([]byte(want), []byte(parts[1]))
}

func (g *StateTokenGenerator) signature(u *models.User, purpose string, ts int64) string {
	var lastLogin string
	if u.LastLogin != nil {
		lastLogin = strconv.FormatInt(u.LastLogin.Unix(), 10)
	}

	mac := hmac.New(sha256.New, g.secret)
	fmt.Fprintf(mac, "%s|%s|%s|%s|%d",
		u.ID, purpose, u.PasswordHash, lastLogin, ts)

	return hex.EncodeToString(mac.Sum(nil))[:40]
}

// EncodeUID embala o id do usuário para compor o link enviado por email.
func EncodeUID(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id.String()))
}

func DecodeUID(raw string) (uuid.UUID, error) {
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(string(b))
}
