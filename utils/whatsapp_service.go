package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aprovacriativos/aprova_backend/config"
)

// WhatsAppService delivers verification codes over the bulk messaging
// gateway's WhatsApp route.
type WhatsAppService struct {
	Username string
	Password string
	SenderID string
	APIPath  string
	Client   *http.Client
}

// WhatsAppResponse represents the gateway response
type WhatsAppResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		MessageID string `json:"message_id"`
		Cost      string `json:"cost"`
	} `json:"data"`
}

// NewWhatsAppService creates a new WhatsApp service instance
func NewWhatsAppService(cfg *config.Config) *WhatsAppService {
	return &WhatsAppService{
		Username: cfg.WhatsAppUsername,
		Password: cfg.WhatsAppPassword,
		SenderID: cfg.WhatsAppSenderID,
		APIPath:  cfg.WhatsAppAPIURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendCode sends a verification code to the given phone number. The
// destination must carry only digits and an optional leading "+".
func (s *WhatsAppService) SendCode(phone, code string) error {
	if s.APIPath == "" || s.Username == "" || s.Password == "" {
		return fmt.Errorf("missing WhatsApp gateway configuration")
	}

	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}

	params := url.Values{}
	params.Set("username", s.Username)
	params.Set("password", s.Password)
	params.Set("senderid", s.SenderID)
	params.Set("destination", phone)
	params.Set("message", code)
	params.Set("route", "wp") // wp = WhatsApp route
	params.Set("template", "otp")
	params.Set("variables", code)
	params.Set("reference", uuid.NewString())

	fullURL := fmt.Sprintf("%s?%s", s.APIPath, params.Encode())

	req, err := http.NewRequest("POST", fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("User-Agent", "Aprova-OTP-Service/1.0")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send WhatsApp request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("WhatsApp API returned status %d: %s", resp.StatusCode, string(body))
	}

	var waResp WhatsAppResponse
	if err := json.Unmarshal(body, &waResp); err != nil {
		// Some gateway deployments answer with a bare text body
		responseStr := strings.ToLower(strings.TrimSpace(string(body)))
		if strings.Contains(responseStr, "success") || strings.Contains(responseStr, "sent") {
			return nil
		}
		return fmt.Errorf("failed to parse WhatsApp response: %w", err)
	}

	if waResp.Status == "success" || waResp.Status == "sent" {
		return nil
	}

	return fmt.Errorf("WhatsApp sending failed: %s", waResp.Message)
}
