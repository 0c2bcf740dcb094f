package handlers

import (
	"matchly/internal/app"
	authController "matchly/internal/controllers/auth"
	"matchly/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authController authController.AuthControllerInterface
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		authController: app.Controllers.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	h.router.Post("/login", h.login)
}

// login accepts a JSON or form-encoded body.
func (h *AuthHandler) login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		h.log.TraceFromContext(c.UserContext()).Function("login").
			Debug("unreadable login body", "error", err)
	}

	response, err := h.authController.Login(c.UserContext(), req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(response)
}
