package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain/account"
	"dastarkhan/internal/infrastructure/http/v1/dto"
)

// AccountService is the account behaviour the handler needs.
type AccountService interface {
	SignUp(ctx context.Context, in account.SignUpInput) (*account.Account, *account.Token, error)
	Login(ctx context.Context, creds account.Credentials) (*account.Token, *account.Account, error)
	GetProfile(ctx context.Context, accountID id.ID) (*account.Account, error)
	UpdateProfile(ctx context.Context, accountID id.ID, in account.ProfileInput) (*account.Account, error)
	ResetPassword(ctx context.Context, accountID id.ID, password, confirm string) error
	IssuePhoneToken(ctx context.Context, phone string) error
	VerifyPhoneToken(ctx context.Context, phone, code string) (*account.Token, error)
}

// AccountHandler handles registration, login and profile endpoints.
type AccountHandler struct {
	*BaseHandler
	service AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(base *BaseHandler, service AccountService) *AccountHandler {
	return &AccountHandler{BaseHandler: base, service: service}
}

// SignUp handles POST /account/sign-up
func (h *AccountHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a, token, err := h.service.SignUp(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.SignUpResponse{
		Account:              dto.FromAccount(a, h.URL()),
		Token:                dto.FromToken(token),
		VerificationRequired: token == nil,
	})
}

// Login handles POST /account/login
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	token, a, err := h.service.Login(c.Request.Context(), req.ToCredentials())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.LoginResponse{Token: dto.FromToken(token), Account: dto.FromAccount(a, h.URL())})
}

// Profile handles GET /account/profile
func (h *AccountHandler) Profile(c *gin.Context) {
	uid, ok := h.UserID(c)
	if !ok {
		return
	}

	a, err := h.service.GetProfile(c.Request.Context(), uid)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromAccount(a, h.URL()))
}

// UpdateProfile handles PUT /account/profile
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	uid, ok := h.UserID(c)
	if !ok {
		return
	}
	var req dto.ProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	a, err := h.service.UpdateProfile(c.Request.Context(), uid, in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromAccount(a, h.URL()))
}

// ResetPassword handles PUT /account/password
func (h *AccountHandler) ResetPassword(c *gin.Context) {
	uid, ok := h.UserID(c)
	if !ok {
		return
	}
	var req dto.PasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), uid, req.Password, req.ConfirmPassword); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "password updated")
}

// IssuePhoneToken handles POST /account/phone-token
func (h *AccountHandler) IssuePhoneToken(c *gin.Context) {
	var req dto.PhoneTokenRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.IssuePhoneToken(c.Request.Context(), req.PhoneNumber); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "verification code sent")
}

// VerifyPhoneToken handles POST /account/verify
func (h *AccountHandler) VerifyPhoneToken(c *gin.Context) {
	var req dto.VerifyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	token, err := h.service.VerifyPhoneToken(c.Request.Context(), req.PhoneNumber, req.Code)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromToken(token))
}

// RegisterRoutes registers account routes. Phone verification routes are
// mounted only when verification is enabled.
func (h *AccountHandler) RegisterRoutes(public, protected *gin.RouterGroup, phoneVerification bool) {
	public.POST("/sign-up", h.SignUp)
	public.POST("/login", h.Login)
	if phoneVerification {
		public.POST("/phone-token", h.IssuePhoneToken)
		public.POST("/verify", h.VerifyPhoneToken)
	}

	protected.GET("/profile", h.Profile)
	protected.PUT("/profile", h.UpdateProfile)
	protected.PUT("/password", h.ResetPassword)
}
