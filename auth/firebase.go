package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/auth"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// FirebaseProvider implements Provider on Firebase Authentication: the Admin
// SDK for token verification and identity deletion, the Identity Toolkit
// REST API for the credential operations the Admin SDK does not expose
// (password sign-in/up, reset emails).
type FirebaseProvider struct {
	identityState

	client     *fbauth.Client
	projectID  string
	apiKey     string
	httpClient *http.Client
}

func NewFirebaseProvider(client *fbauth.Client, projectID, apiKey string) *FirebaseProvider {
	return &FirebaseProvider{
		client:     client,
		projectID:  projectID,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
}

func (p *FirebaseProvider) SignUp(ctx context.Context, email, password string) (Identity, error) {
	var resp struct {
		LocalID string `json:"localId"`
		Email   string `json:"email"`
		IDToken string `json:"idToken"`
	}
	err := p.call(ctx, "accounts:signUp", map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &resp)
	if err != nil {
		return Identity{}, err
	}

	// Verification email, matching the sign-up flow of the web client.
	if err := p.call(ctx, "accounts:sendOobCode", map[string]interface{}{
		"requestType": "VERIFY_EMAIL",
		"idToken":     resp.IDToken,
	}, nil); err != nil {
		log.Printf("⚠️ Failed to send verification email to %s: %v", email, err)
	}

	identity := Identity{ID: resp.LocalID, Email: resp.Email, ProviderType: ProviderPassword}
	p.set(&identity)
	return identity, nil
}

func (p *FirebaseProvider) SignIn(ctx context.Context, email, password string) (Identity, error) {
	identity, err := p.signInWithPassword(ctx, email, password)
	if err != nil {
		return Identity{}, err
	}
	p.set(&identity)
	return identity, nil
}

func (p *FirebaseProvider) SignInWithGoogle(ctx context.Context, idToken string) (Identity, error) {
	token, err := p.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return Identity{}, fmt.Errorf("verify ID token: %w", err)
	}
	if token.Audience != p.projectID {
		return Identity{}, fmt.Errorf("token audience mismatch: got %q", token.Audience)
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)

	identity := Identity{
		ID:           token.UID,
		Email:        email,
		DisplayName:  name,
		PhotoURL:     picture,
		ProviderType: ProviderGoogle,
	}
	p.set(&identity)
	return identity, nil
}

func (p *FirebaseProvider) SignOut(_ context.Context) error {
	p.set(nil)
	return nil
}

func (p *FirebaseProvider) SendPasswordReset(ctx context.Context, email string) error {
	return p.call(ctx, "accounts:sendOobCode", map[string]interface{}{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}, nil)
}

func (p *FirebaseProvider) DeleteIdentity(ctx context.Context, id, password string) error {
	if current, ok := p.Current(); ok && current.ID == id &&
		current.ProviderType == ProviderPassword && password != "" {
		if _, err := p.signInWithPassword(ctx, current.Email, password); err != nil {
			return err
		}
	}

	if err := p.client.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete identity %s: %w", id, err)
	}
	if current, ok := p.Current(); ok && current.ID == id {
		p.set(nil)
	}
	return nil
}

func (p *FirebaseProvider) signInWithPassword(ctx context.Context, email, password string) (Identity, error) {
	var resp struct {
		LocalID        string `json:"localId"`
		Email          string `json:"email"`
		DisplayName    string `json:"displayName"`
		ProfilePicture string `json:"profilePicture"`
	}
	err := p.call(ctx, "accounts:signInWithPassword", map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &resp)
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		ID:           resp.LocalID,
		Email:        resp.Email,
		DisplayName:  resp.DisplayName,
		PhotoURL:     resp.ProfilePicture,
		ProviderType: ProviderPassword,
	}, nil
}

// call posts one Identity Toolkit request and decodes the response into out.
func (p *FirebaseProvider) call(ctx context.Context, endpoint string, body map[string]interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s?key=%s", identityToolkitURL, endpoint, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(res.Body).Decode(&apiErr)
		if isCredentialError(apiErr.Error.Message) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("%s: %s", endpoint, apiErr.Error.Message)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func isCredentialError(message string) bool {
	switch {
	case strings.HasPrefix(message, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(message, "INVALID_PASSWORD"),
		strings.HasPrefix(message, "INVALID_LOGIN_CREDENTIALS"),
		strings.HasPrefix(message, "USER_DISABLED"):
		return true
	}
	return false
}
