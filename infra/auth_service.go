package infra

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/memoria-viva/memorial-service/config"
)

// AuthorizationService is the remote session service. When no URL is
// configured the service runs with local JWT verification only.
type AuthorizationService struct {
	AuthorizationServiceURL string
	PrivateKey              string
}

func InitAuthorizationService(cfg *config.EnvConfig) *AuthorizationService {
	url := cfg.ExternalService.AuthorizationServiceURL
	if url == "" {
		log.Println("Warning: authorization service URL not configured, tokens are verified locally only")
		return nil
	}

	return &AuthorizationService{
		AuthorizationServiceURL: url,
		PrivateKey:              cfg.PrivateKey,
	}
}

// CheckAccessToken asks the authorization service whether the session behind
// the token is still active.
func (s *AuthorizationService) CheckAccessToken(token string) error {
	url := fmt.Sprintf("%s/api/v2/authorization/verify", s.AuthorizationServiceURL)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Private-Key", s.PrivateKey)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("authorization service returned %d: %s", resp.StatusCode, string(raw))
	}

	return nil
}
