package handlers

import (
	"matchly/internal/app"
	recommendationController "matchly/internal/controllers/recommendation"
	userController "matchly/internal/controllers/users"
	"matchly/internal/handlers/middleware"
	"matchly/internal/models"
	"matchly/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Handler
	userController           userController.UserControllerInterface
	recommendationController recommendationController.RecommendationControllerInterface
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	log := logger.New("handlers").File("user_handler")
	return &UserHandler{
		userController:           app.Controllers.User,
		recommendationController: app.Controllers.Recommendation,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	requireAuth := h.middleware.RequireAuth()

	h.router.Get("/user", requireAuth, h.getCurrentUser)

	users := h.router.Group("/users", requireAuth)
	users.Get("/recommendations", h.getRecommendations)
	users.Get("/liked", h.getLiked)
}

func (h *UserHandler) getCurrentUser(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	profile, err := h.userController.GetProfile(c.UserContext(), user)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(profile.ToResource())
}

func (h *UserHandler) getRecommendations(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	result, err := h.recommendationController.ListRecommendations(
		c.UserContext(),
		user,
		c.QueryInt("page", 1),
	)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(toPaginatedUsers(result, pagePath(c)))
}

func (h *UserHandler) getLiked(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	result, err := h.userController.ListLiked(c.UserContext(), user, c.QueryInt("page", 1))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(toPaginatedUsers(result, pagePath(c)))
}

func toPaginatedUsers(
	result types.PageResult[*models.User],
	path string,
) types.Paginated[models.UserResource] {
	return types.NewPaginated(types.PageResult[models.UserResource]{
		Items: models.ToResources(result.Items),
		Total: result.Total,
		Page:  result.Page,
	}, path)
}
