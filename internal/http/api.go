package http

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shopfront/internal/apperr"
	"shopfront/internal/auth"
	"shopfront/internal/domain"
	"shopfront/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth       service.AuthService
	categories service.CategoryService
	secret     []byte
	sessionTTL time.Duration
	logger     *logrus.Logger
}

func NewHandler(authSvc service.AuthService, categorySvc service.CategoryService, secret []byte, sessionTTL time.Duration, logger *logrus.Logger) *Handler {
	if sessionTTL <= 0 {
		sessionTTL = auth.DefaultTTL
	}
	return &Handler{
		auth:       authSvc,
		categories: categorySvc,
		secret:     secret,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(SessionGate(h.verifyToken))

	registerPages(router)

	api := router.Group("/api")
	{
		api.POST("/rpc/:operation", h.rpc)
		api.POST("/signup", h.signupPost)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

func (h *Handler) verifyToken(token string) (string, error) {
	return auth.Verify(token, h.secret)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// rpc multiplexes the service operations over one endpoint, keyed by
// operation name.
func (h *Handler) rpc(c *gin.Context) {
	switch c.Param("operation") {
	case "auth.signup":
		h.rpcSignup(c)
	case "auth.login":
		h.rpcLogin(c)
	case "auth.me":
		h.rpcMe(c)
	case "categories.list":
		h.rpcListCategories(c)
	case "categories.getUserInterests":
		h.rpcGetUserInterests(c)
	case "categories.saveUserInterests":
		h.rpcSaveUserInterests(c)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown operation", "code": string(apperr.KindNotFound)})
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type listCategoriesRequest struct {
	Page  *int `json:"page"`
	Limit *int `json:"limit"`
}

type saveInterestsRequest struct {
	CategoryIDs []string `json:"categoryIds"`
}

func (h *Handler) rpcSignup(c *gin.Context) {
	var req signupRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User created successfully",
		"user":    userToResponse(user, true),
	})
}

func (h *Handler) rpcLogin(c *gin.Context) {
	var req loginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// unknown email and wrong password are indistinguishable on the
		// wire so the endpoint does not leak account existence
		kind := apperr.KindOf(err)
		if kind == apperr.KindNotFound || kind == apperr.KindAuthentication {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "invalid email or password",
				"code":  string(apperr.KindAuthentication),
			})
			return
		}
		h.renderError(c, err)
		return
	}

	c.SetCookie(SessionCookie, token, int(h.sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    userToResponse(user, false),
	})
}

// rpcMe resolves the authenticated caller to their account, for UI chrome
// that needs the signed-in user's name and email.
func (h *Handler) rpcMe(c *gin.Context) {
	userID := h.currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "user not authenticated",
			"code":  string(apperr.KindAuthentication),
		})
		return
	}

	user, err := h.auth.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToResponse(user, true)})
}

func (h *Handler) rpcListCategories(c *gin.Context) {
	var req listCategoriesRequest
	if !h.bindJSON(c, &req) {
		return
	}

	page, limit := 1, service.DefaultPageLimit
	if req.Page != nil {
		page = *req.Page
	}
	if req.Limit != nil {
		limit = *req.Limit
	}

	result, err := h.categories.List(c.Request.Context(), page, limit)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categoriesToResponse(result.Categories),
		"pagination": paginationToResponse(result.Pagination),
	})
}

func (h *Handler) rpcGetUserInterests(c *gin.Context) {
	interests, err := h.categories.GetUserInterests(c.Request.Context(), h.currentUserID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"interests": categoriesToResponse(interests)})
}

func (h *Handler) rpcSaveUserInterests(c *gin.Context) {
	var req saveInterestsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	interests, err := h.categories.SaveUserInterests(c.Request.Context(), h.currentUserID(c), req.CategoryIDs)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Interests updated successfully",
		"interests": categoriesToResponse(interests),
	})
}

// signupPost is the plain HTTP twin of auth.signup. Same service call, only
// the response shaping differs.
func (h *Handler) signupPost(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch apperr.KindOf(err) {
		case apperr.KindValidation:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case apperr.KindConflict:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.logger.WithError(err).Error("signup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    userToResponse(user, false),
	})
}

// currentUserID extracts and verifies the session for a protected API
// operation, from the cookie or an Authorization bearer header. Empty means
// unauthenticated; services reject that before touching the store.
func (h *Handler) currentUserID(c *gin.Context) string {
	token := ""
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		token = strings.TrimPrefix(header, "Bearer ")
	}
	if token == "" {
		token, _ = c.Cookie(SessionCookie)
	}
	if token == "" {
		return ""
	}

	userID, err := auth.Verify(token, h.secret)
	if err != nil {
		return ""
	}
	return userID
}

func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body",
			"code":  string(apperr.KindValidation),
		})
		return false
	}
	return true
}

func (h *Handler) renderError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	message := err.Error()
	if kind == apperr.KindInternal {
		h.logger.WithError(err).Error("internal error")
		message = "something went wrong"
	}
	c.JSON(statusForKind(kind), gin.H{"error": message, "code": string(kind)})
}

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindAuthentication:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PaginationResponse struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Total           int  `json:"total"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

func userToResponse(user *domain.User, withCreatedAt bool) UserResponse {
	resp := UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
	if withCreatedAt && !user.CreatedAt.IsZero() {
		resp.CreatedAt = user.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func categoriesToResponse(categories []domain.Category) []CategoryResponse {
	resp := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = CategoryResponse{ID: c.ID, Name: c.Name}
	}
	return resp
}

func paginationToResponse(p domain.Pagination) PaginationResponse {
	return PaginationResponse{
		Page:            p.Page,
		Limit:           p.Limit,
		Total:           p.Total,
		TotalPages:      p.TotalPages,
		HasNextPage:     p.HasNextPage,
		HasPreviousPage: p.HasPreviousPage,
	}
}
