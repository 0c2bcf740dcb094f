package handlers

import (
	"matchly/internal/app"
	swipeController "matchly/internal/controllers/swipes"
	"matchly/internal/handlers/middleware"
	"matchly/internal/models"
	"matchly/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type SwipeHandler struct {
	Handler
	swipeController swipeController.SwipeControllerInterface
}

type swipeResponse struct {
	Message string        `json:"message"`
	Swipe   *models.Swipe `json:"swipe"`
}

func NewSwipeHandler(app app.App, router fiber.Router) *SwipeHandler {
	log := logger.New("handlers").File("swipe_handler")
	return &SwipeHandler{
		swipeController: app.Controllers.Swipe,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *SwipeHandler) Register() {
	h.router.Post("/swipes", h.middleware.RequireAuth(), h.recordSwipe)
}

func (h *SwipeHandler) recordSwipe(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	var req types.SwipeRequest
	if err := c.BodyParser(&req); err != nil {
		h.log.TraceFromContext(c.UserContext()).Function("recordSwipe").
			Debug("unreadable swipe body", "error", err)
	}

	swipe, err := h.swipeController.RecordSwipe(c.UserContext(), user, req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(swipeResponse{
		Message: "Swipe stored successfully",
		Swipe:   swipe,
	})
}
