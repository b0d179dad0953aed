package handler

import (
	"github.com/gofiber/fiber/v2"

	"wedding-feed/internal/domain"
	"wedding-feed/internal/middleware"
	"wedding-feed/internal/service/story"
)

type StoryHandler struct {
	storyService story.Service
}

func NewStoryHandler(storyService story.Service) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

func (h *StoryHandler) Create(c *fiber.Ctx) error {
	guestID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	var input domain.CreateStoryInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.storyService.Create(c.Context(), guestID, input)
	if err != nil {
		return middleware.BadRequest(err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *StoryHandler) ListActive(c *fiber.Ctx) error {
	guestID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	stories, err := h.storyService.ListActive(c.Context(), guestID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"stories": stories})
}
