package dto

import (
	"time"

	"dastarkhan/internal/domain/account"
)

// SignUpRequest for POST /account/sign-up.
type SignUpRequest struct {
	PhoneNumber     string  `json:"phoneNumber" binding:"required"`
	FirstName       string  `json:"firstName" binding:"required"`
	LastName        *string `json:"lastName"`
	Password        string  `json:"password" binding:"required"`
	ConfirmPassword string  `json:"confirmPassword" binding:"required"`
}

// ToInput converts the request to a domain input.
func (r SignUpRequest) ToInput() account.SignUpInput {
	return account.SignUpInput{
		PhoneNumber:     r.PhoneNumber,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
	}
}

// LoginRequest for POST /account/login.
type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// ToCredentials converts the request to domain credentials.
func (r LoginRequest) ToCredentials() account.Credentials {
	return account.Credentials{PhoneNumber: r.PhoneNumber, Password: r.Password}
}

// ProfileRequest for PUT /account/profile.
type ProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	ImagePayload
}

// ToInput converts the request to a domain input.
func (r ProfileRequest) ToInput() (account.ProfileInput, error) {
	upload, err := r.Upload()
	if err != nil {
		return account.ProfileInput{}, err
	}
	return account.ProfileInput{FirstName: r.FirstName, LastName: r.LastName, Avatar: upload}, nil
}

// PasswordRequest for PUT /account/password.
type PasswordRequest struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// PhoneTokenRequest for POST /account/phone-token.
type PhoneTokenRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// VerifyRequest for POST /account/verify.
type VerifyRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Code        string `json:"code" binding:"required"`
}

// TokenResponse carries an access token.
type TokenResponse struct {
	Access    string    `json:"access"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// FromToken creates TokenResponse. A nil token yields nil.
func FromToken(t *account.Token) *TokenResponse {
	if t == nil {
		return nil
	}
	return &TokenResponse{Access: t.AccessToken, ExpiresAt: t.ExpiresAt}
}

// AccountResponse is the public view of an account.
type AccountResponse struct {
	BaseResponse
	PhoneNumber string  `json:"phoneNumber"`
	FirstName   string  `json:"firstName"`
	LastName    *string `json:"lastName,omitempty"`
	Status      string  `json:"status"`
	IsActive    bool    `json:"isActive"`
	Avatar      string  `json:"avatar"`
	AvatarURL   string  `json:"avatarUrl"`
}

// FromAccount creates AccountResponse.
func FromAccount(a *account.Account, url URLFunc) AccountResponse {
	return AccountResponse{
		BaseResponse: fromBase(a.BaseEntity, a.Timestamps),
		PhoneNumber:  a.PhoneNumber,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Status:       a.Status,
		IsActive:     a.IsActive,
		Avatar:       a.Avatar,
		AvatarURL:    url.resolve(a.Avatar),
	}
}

// SignUpResponse is returned by sign-up. Token is absent while the phone
// number awaits verification.
type SignUpResponse struct {
	Account              AccountResponse `json:"account"`
	Token                *TokenResponse  `json:"token,omitempty"`
	VerificationRequired bool            `json:"verificationRequired"`
}

// LoginResponse is returned by login.
type LoginResponse struct {
	Token   *TokenResponse  `json:"token"`
	Account AccountResponse `json:"account"`
}
