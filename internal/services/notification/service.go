// Package notification delivers push notifications through the FCM HTTP v1
// API: it signs a service-account JWT assertion, exchanges it for a bearer
// token, fans the message out to device tokens, and prunes tokens the
// transport reports as unknown.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"quizadmin/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// ErrConfiguration marks credential-load and token-exchange failures. These
// abort the whole dispatch before any per-token send is attempted.
var ErrConfiguration = errors.New("push configuration error")

const (
	defaultTokenURL        = "https://oauth2.googleapis.com/token"
	defaultSendURLTemplate = "https://fcm.googleapis.com/v1/projects/%s/messages:send"
	messagingScope         = "https://www.googleapis.com/auth/firebase.messaging"
	jwtBearerGrant         = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	assertionTTL           = time.Hour
)

// TokenStore is the device-token persistence surface.
type TokenStore interface {
	ListAll(ctx context.Context) ([]models.DeviceToken, error)
	ListByUserIDs(ctx context.Context, userIDs []uint) ([]models.DeviceToken, error)
	DeleteByToken(ctx context.Context, token string) error
}

// Config points the dispatcher at the credential file and, for tests, at
// alternative endpoints.
type Config struct {
	CredentialsPath string
	TokenURL        string
	SendURLTemplate string
	Timeout         time.Duration
}

// Message is the notification payload. Data is mirrored alongside the
// display fields so the app can react to taps.
type Message struct {
	Title string
	Body  string
	Image string
	Data  map[string]string
}

// DispatchResult aggregates per-token outcomes. Per-token failures are
// non-fatal; the call still succeeds with the counts.
type DispatchResult struct {
	SuccessCount  int      `json:"success_count"`
	FailureCount  int      `json:"failure_count"`
	PrunedTokens  int      `json:"pruned_tokens"`
	Errors        []string `json:"errors,omitempty"`
	TargetedUsers int      `json:"targeted_users,omitempty"`
}

type Service struct {
	tokens TokenStore
	client *http.Client
	cfg    Config
	log    *logrus.Logger
	now    func() time.Time
}

func NewService(tokens TokenStore, cfg Config, log *logrus.Logger) *Service {
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	if cfg.SendURLTemplate == "" {
		cfg.SendURLTemplate = defaultSendURLTemplate
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Service{
		tokens: tokens,
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		log:    log,
		now:    time.Now,
	}
}

type serviceAccount struct {
	PrivateKey  string `json:"private_key"`
	ClientEmail string `json:"client_email"`
	ProjectID   string `json:"project_id"`
	TokenURI    string `json:"token_uri"`
}

type assertionClaims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Image string `json:"image,omitempty"`
}

type fcmMessage struct {
	Token        string            `json:"token"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmSendRequest struct {
	Message fcmMessage `json:"message"`
}

type fcmErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
		Details []struct {
			ErrorCode string `json:"errorCode"`
		} `json:"details"`
	} `json:"error"`
}

// Dispatch sends the message to every device token of the targeted users
// (all users when userIDs is empty). Credential or token-exchange failure
// aborts before any send; per-token failures are collected and stale tokens
// deleted as a side effect.
func (s *Service) Dispatch(ctx context.Context, userIDs []uint, msg Message) (*DispatchResult, error) {
	account, err := s.loadServiceAccount()
	if err != nil {
		return nil, err
	}

	bearer, err := s.exchangeToken(ctx, account)
	if err != nil {
		return nil, err
	}

	var tokens []models.DeviceToken
	if len(userIDs) == 0 {
		tokens, err = s.tokens.ListAll(ctx)
	} else {
		tokens, err = s.tokens.ListByUserIDs(ctx, userIDs)
	}
	if err != nil {
		return nil, err
	}

	data := make(map[string]string, len(msg.Data)+3)
	for k, v := range msg.Data {
		data[k] = v
	}
	data["title"] = msg.Title
	data["body"] = msg.Body
	if msg.Image != "" {
		data["image"] = msg.Image
	}

	sendURL := fmt.Sprintf(s.cfg.SendURLTemplate, account.ProjectID)
	result := &DispatchResult{TargetedUsers: len(userIDs)}

	for _, tok := range tokens {
		stale, err := s.send(ctx, sendURL, bearer, tok.Token, msg, data)
		if err == nil {
			result.SuccessCount++
			continue
		}
		result.FailureCount++
		result.Errors = append(result.Errors, fmt.Sprintf("token %s: %v", truncateToken(tok.Token), err))
		if stale {
			if delErr := s.tokens.DeleteByToken(ctx, tok.Token); delErr != nil {
				s.log.WithError(delErr).Warn("failed to prune stale device token")
			} else {
				result.PrunedTokens++
			}
		}
	}

	s.log.WithFields(logrus.Fields{
		"success": result.SuccessCount,
		"failure": result.FailureCount,
		"pruned":  result.PrunedTokens,
	}).Info("push dispatch finished")

	return result, nil
}

func (s *Service) loadServiceAccount() (*serviceAccount, error) {
	raw, err := os.ReadFile(s.cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading credentials: %v", ErrConfiguration, err)
	}
	var account serviceAccount
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, fmt.Errorf("%w: parsing credentials: %v", ErrConfiguration, err)
	}
	if account.PrivateKey == "" || account.ClientEmail == "" || account.ProjectID == "" {
		return nil, fmt.Errorf("%w: credentials missing private_key, client_email or project_id", ErrConfiguration)
	}
	if account.TokenURI == "" {
		account.TokenURI = s.cfg.TokenURL
	}
	return &account, nil
}

// signAssertion builds the three-part service-account JWT: base64url header
// and claims joined with '.', RS256-signed with the account's private key.
func (s *Service) signAssertion(account *serviceAccount) (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(account.PrivateKey))
	if err != nil {
		return "", fmt.Errorf("%w: parsing private key: %v", ErrConfiguration, err)
	}

	now := s.now()
	claims := assertionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    account.ClientEmail,
			Audience:  jwt.ClaimStrings{account.TokenURI},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(assertionTTL)),
		},
		Scope: messagingScope,
	}

	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("%w: signing assertion: %v", ErrConfiguration, err)
	}
	return assertion, nil
}

func (s *Service) exchangeToken(ctx context.Context, account *serviceAccount) (string, error) {
	assertion, err := s.signAssertion(account)
	if err != nil {
		return "", err
	}

	form := url.Values{
		"grant_type": {jwtBearerGrant},
		"assertion":  {assertion},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, account.TokenURI, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: building token request: %v", ErrConfiguration, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token exchange: %v", ErrConfiguration, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token endpoint returned %d", ErrConfiguration, resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.AccessToken == "" {
		return "", fmt.Errorf("%w: token endpoint returned no access token", ErrConfiguration)
	}
	return body.AccessToken, nil
}

// send posts one message and reports whether a failure means the token is
// stale and should be pruned.
func (s *Service) send(ctx context.Context, sendURL, bearer, deviceToken string, msg Message, data map[string]string) (stale bool, err error) {
	payload, err := json.Marshal(fcmSendRequest{Message: fcmMessage{
		Token: deviceToken,
		Notification: fcmNotification{
			Title: msg.Title,
			Body:  msg.Body,
			Image: msg.Image,
		},
		Data: data,
	}})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, bytes.NewReader(payload))
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return false, nil
	}

	var fcmErr fcmErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&fcmErr)

	stale = resp.StatusCode == http.StatusNotFound || fcmErr.Error.Status == "NOT_FOUND"
	for _, detail := range fcmErr.Error.Details {
		if detail.ErrorCode == "UNREGISTERED" {
			stale = true
		}
	}

	if fcmErr.Error.Message != "" {
		return stale, fmt.Errorf("fcm %s: %s", fcmErr.Error.Status, fcmErr.Error.Message)
	}
	return stale, fmt.Errorf("fcm returned status %d", resp.StatusCode)
}

func truncateToken(token string) string {
	if len(token) <= 12 {
		return token
	}
	return token[:12] + "..."
}
