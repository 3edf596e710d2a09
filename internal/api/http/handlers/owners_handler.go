package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/delfood/owner-service/internal/api/dto"
	"github.com/delfood/owner-service/internal/auth"
	"github.com/delfood/owner-service/internal/config"
	"github.com/delfood/owner-service/internal/domain"
	"github.com/delfood/owner-service/internal/service"
	apperrors "github.com/delfood/owner-service/pkg/util"
)

// OwnersHandler exposes the owner account endpoints.
type OwnersHandler struct {
	owners     *service.OwnerService
	cookieName string
	sessionTTL time.Duration
}

// NewOwnersHandler constructs handler.
func NewOwnersHandler(ownerService *service.OwnerService, cfg config.AuthConfig) *OwnersHandler {
	return &OwnersHandler{
		owners:     ownerService,
		cookieName: cfg.SessionCookieName,
		sessionTTL: cfg.SessionTTL(),
	}
}

// SignUp handles POST /owners.
func (h *OwnersHandler) SignUp(c *fiber.Ctx) error {
	var req dto.OwnerSignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.owners.SignUp(c.UserContext(), domain.OwnerRegistration{
		ID:       req.ID,
		Password: req.Password,
		Name:     req.Name,
		Mail:     req.Mail,
		Tel:      req.Tel,
	})
	if err != nil {
		return err
	}

	if result.Status == domain.SignUpIDDuplicated {
		return c.Status(http.StatusConflict).JSON(dto.ResultResponse{Result: string(result.Status)})
	}
	return c.Status(http.StatusCreated).JSON(dto.ResultResponse{Result: string(result.Status)})
}

// IDCheck handles GET /owners/id-check/:id.
func (h *OwnersHandler) IDCheck(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return fiber.NewError(http.StatusBadRequest, "id required")
	}

	availability, err := h.owners.CheckIDAvailability(c.UserContext(), id)
	if err != nil {
		return err
	}

	if availability == domain.IDTaken {
		return c.Status(http.StatusConflict).JSON(dto.ResultResponse{Result: "ID_DUPLICATED"})
	}
	return c.JSON(dto.ResultResponse{Result: "SUCCESS"})
}

// Login handles POST /owners/login. The session cookie is set only on a
// successful login; failed attempts never touch session state.
func (h *OwnersHandler) Login(c *fiber.Ctx) error {
	var req dto.OwnerLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ID == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "id and password required")
	}

	token := c.Cookies(h.cookieName)
	if token == "" {
		token = uuid.NewString()
	}

	result, err := h.owners.Login(c.UserContext(), token, req.ID, req.Password)
	if err != nil {
		return err
	}

	if result.Status != domain.LoginSuccess {
		return c.Status(http.StatusUnauthorized).JSON(dto.OwnerLoginResponse{Result: string(result.Status)})
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
	})
	return c.JSON(dto.OwnerLoginResponse{Result: string(result.Status), OwnerInfo: result.Owner})
}

// Logout handles GET /owners/logout. Gated; clearing is idempotent.
func (h *OwnersHandler) Logout(c *fiber.Ctx) error {
	token, ok := auth.SessionTokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}

	if err := h.owners.Logout(c.UserContext(), token); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.JSON(dto.ResultResponse{Result: "SUCCESS"})
}

// MyInfo handles GET /owners/my-info. Gated.
func (h *OwnersHandler) MyInfo(c *fiber.Ctx) error {
	ownerID, ok := auth.OwnerIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}

	info, err := h.owners.Profile(c.UserContext(), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OwnerInfoResponse{OwnerInfo: info})
}

// UpdateContact handles PATCH /owners. Gated.
func (h *OwnersHandler) UpdateContact(c *fiber.Ctx) error {
	ownerID, ok := auth.OwnerIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}

	var req dto.UpdateOwnerContactRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.owners.UpdateContact(c.UserContext(), ownerID, req.Mail, req.Tel, req.Password)
	if err != nil {
		return err
	}
	return c.Status(updateStatusCode(result.Status)).JSON(dto.ResultResponse{Result: string(result.Status)})
}

// UpdatePassword handles PATCH /owners/password. Gated.
func (h *OwnersHandler) UpdatePassword(c *fiber.Ctx) error {
	ownerID, ok := auth.OwnerIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}

	var req dto.UpdateOwnerPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.owners.UpdatePassword(c.UserContext(), ownerID, req.Password, req.NewPassword)
	if err != nil {
		return err
	}
	return c.Status(updateStatusCode(result.Status)).JSON(dto.ResultResponse{Result: string(result.Status)})
}

func updateStatusCode(status domain.UpdateStatus) int {
	switch status {
	case domain.UpdateSuccess:
		return http.StatusOK
	case domain.UpdateEmptyContent, domain.UpdateEmptyPassword:
		return http.StatusBadRequest
	case domain.UpdatePasswordMismatch:
		return http.StatusUnauthorized
	case domain.UpdatePasswordDuplicated:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
