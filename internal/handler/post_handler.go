package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wedding-feed/internal/domain"
	"wedding-feed/internal/middleware"
	"wedding-feed/internal/service/post"
)

type PostHandler struct {
	postService post.Service
}

func NewPostHandler(postService post.Service) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	guestID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	var input domain.CreatePostInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.postService.Create(c.Context(), guestID, input)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return middleware.NotFound("Post not found")
		}
		return middleware.BadRequest(err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *PostHandler) Feed(c *fiber.Ctx) error {
	guestID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	params := getPaginationParams(c)
	result, err := h.postService.Feed(c.Context(), guestID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PostHandler) Get(c *fiber.Ctx) error {
	guestID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	postID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	result, err := h.postService.GetByID(c.Context(), postID, guestID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return middleware.NotFound("Post not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	caller := middleware.GetCurrentGuest(c)
	if caller == nil {
		return middleware.Unauthorized("Guest not authenticated")
	}

	postID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	if err := h.postService.Delete(c.Context(), postID, caller); err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return middleware.NotFound("Post not found")
		}
		if errors.Is(err, post.ErrNotAllowed) {
			return middleware.Forbidden("Not allowed to delete this post")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

// ToggleLike flips the caller's like on a post. The response reports the
// resulting state so clients stay in sync after races.
func (h *PostHandler) ToggleLike(c *fiber.Ctx) error {
	guestID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	postID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	liked, err := h.postService.ToggleLike(c.Context(), postID, guestID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return middleware.NotFound("Post not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "liked": liked})
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
