package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	RefreshTTL    = 30 * 24 * time.Hour
	RefreshCookie = "rt"
)

// Sessoes cuida do par access token + refresh token rotativo.
type Sessoes struct {
	DB      *gorm.DB
	Emissor *Emissor
	// Em localhost (http) precisa ser false; em produção (HTTPS) true.
	CookieSecure bool
}

type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int         `json:"expires_in"`
	Usuario     Solicitante `json:"usuario"`
}

func genRaw() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashRaw(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(h[:])
}

func (s *Sessoes) setRTCookie(w http.ResponseWriter, raw string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    raw,
		Path:     "/auth", // cobre /auth/refresh e /auth/logout
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

func (s *Sessoes) clearRTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    "",
		Path:     "/auth",
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (s *Sessoes) novoRefresh(db *gorm.DB, quem Solicitante, familia string) (string, RefreshToken, error) {
	raw, err := genRaw()
	if err != nil {
		return "", RefreshToken{}, err
	}
	rt := RefreshToken{
		UserID:    quem.UsuarioID,
		FamilyID:  familia,
		Hash:      hashRaw(raw),
		IsAdmin:   quem.Admin,
		Nome:      quem.Nome,
		Setor:     quem.Setor,
		ExpiresAt: time.Now().Add(RefreshTTL),
	}
	if err := db.Create(&rt).Error; err != nil {
		return "", RefreshToken{}, err
	}
	return raw, rt, nil
}

func (s *Sessoes) responder(w http.ResponseWriter, access string, quem Solicitante) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TokenResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.Emissor.TTL().Seconds()),
		Usuario:     quem,
	})
}

// IssueTokensOnLogin é chamado pelo login depois de validar e-mail e senha.
func (s *Sessoes) IssueTokensOnLogin(w http.ResponseWriter, quem Solicitante) error {
	access, err := s.Emissor.GerarToken(quem)
	if err != nil {
		return err
	}
	raw, rt, err := s.novoRefresh(s.DB, quem, fmt.Sprintf("fam-%d-%d", quem.UsuarioID, time.Now().UnixNano()))
	if err != nil {
		return err
	}
	s.setRTCookie(w, raw, rt.ExpiresAt)
	s.responder(w, access, quem)
	return nil
}

// POST /auth/refresh
func (s *Sessoes) RefreshHTTPHandler(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(RefreshCookie)
	if err != nil || c.Value == "" {
		http.Error(w, "refresh ausente", http.StatusUnauthorized)
		return
	}

	var cur RefreshToken
	if err := s.DB.Where("hash = ?", hashRaw(c.Value)).First(&cur).Error; err != nil {
		s.clearRTCookie(w)
		http.Error(w, "refresh inválido", http.StatusUnauthorized)
		return
	}
	if cur.RevokedAt != nil || time.Now().After(cur.ExpiresAt) {
		s.clearRTCookie(w)
		http.Error(w, "refresh expirado", http.StatusUnauthorized)
		return
	}

	quem := cur.solicitante()
	var raw string
	var novo RefreshToken
	// revoga o atual e grava o próximo da mesma família
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&cur).Update("revoked_at", &now).Error; err != nil {
			return err
		}
		var err error
		raw, novo, err = s.novoRefresh(tx, quem, cur.FamilyID)
		return err
	})
	if err != nil {
		log.Error().Err(err).Uint("user_id", cur.UserID).Msg("falha ao rotacionar refresh token")
		s.clearRTCookie(w)
		http.Error(w, "erro ao renovar sessão", http.StatusInternalServerError)
		return
	}

	access, err := s.Emissor.GerarToken(quem)
	if err != nil {
		s.clearRTCookie(w)
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}
	s.setRTCookie(w, raw, novo.ExpiresAt)
	s.responder(w, access, quem)
}

// POST /auth/logout
func (s *Sessoes) LogoutHTTPHandler(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(RefreshCookie); err == nil && c.Value != "" {
		now := time.Now()
		if err := s.DB.Model(&RefreshToken{}).Where("hash = ?", hashRaw(c.Value)).Update("revoked_at", &now).Error; err != nil {
			log.Warn().Err(err).Msg("falha ao revogar refresh token")
		}
	}
	s.clearRTCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
