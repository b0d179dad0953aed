package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wedding-feed/internal/domain"
	"wedding-feed/internal/middleware"
	"wedding-feed/internal/service/comment"
)

type CommentHandler struct {
	commentService comment.Service
}

func NewCommentHandler(commentService comment.Service) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	guestID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	postID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if strings.TrimSpace(input.Content) == "" {
		return middleware.BadRequest("Content is required")
	}

	created, err := h.commentService.Create(c.Context(), postID, guestID, input)
	if err != nil {
		if errors.Is(err, comment.ErrPostNotFound) {
			return middleware.NotFound("Post not found")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CommentHandler) ListByPost(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	params := getPaginationParams(c)
	result, err := h.commentService.ListByPost(c.Context(), postID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	guestID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	if err := h.commentService.Delete(c.Context(), guestID, commentID); err != nil {
		if errors.Is(err, comment.ErrCommentNotFound) {
			return middleware.NotFound("Comment not found")
		}
		if errors.Is(err, comment.ErrNotAllowed) {
			return middleware.Forbidden("Not allowed to delete this comment")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
