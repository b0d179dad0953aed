package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wedding-feed/internal/domain"
	"wedding-feed/internal/middleware"
	"wedding-feed/internal/service/follow"
	"wedding-feed/internal/service/guest"
	"wedding-feed/internal/service/post"
)

type GuestHandler struct {
	guestService  guest.Service
	postService   post.Service
	followService follow.Service
}

func NewGuestHandler(guestService guest.Service, postService post.Service, followService follow.Service) *GuestHandler {
	return &GuestHandler{
		guestService:  guestService,
		postService:   postService,
		followService: followService,
	}
}

func (h *GuestHandler) GetMe(c *fiber.Ctx) error {
	guestID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	profile, err := h.guestService.GetProfile(c.Context(), guestID, guestID)
	if err != nil {
		if errors.Is(err, guest.ErrGuestNotFound) {
			return middleware.NotFound("Guest not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *GuestHandler) UpdateMe(c *fiber.Ctx) error {
	guestID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateGuestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.guestService.Update(c.Context(), guestID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *GuestHandler) GetProfile(c *fiber.Ctx) error {
	viewerID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	guestID, err := uuid.Parse(c.Params("guestId"))
	if err != nil {
		return middleware.BadRequest("Invalid guest ID")
	}

	profile, err := h.guestService.GetProfile(c.Context(), guestID, viewerID)
	if err != nil {
		if errors.Is(err, guest.ErrGuestNotFound) {
			return middleware.NotFound("Guest not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *GuestHandler) ListPosts(c *fiber.Ctx) error {
	viewerID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	guestID, err := uuid.Parse(c.Params("guestId"))
	if err != nil {
		return middleware.BadRequest("Invalid guest ID")
	}

	params := getPaginationParams(c)
	result, err := h.postService.ListByAuthor(c.Context(), guestID, viewerID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *GuestHandler) Follow(c *fiber.Ctx) error {
	followerID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	followedID, err := uuid.Parse(c.Params("guestId"))
	if err != nil {
		return middleware.BadRequest("Invalid guest ID")
	}

	if err := h.followService.Follow(c.Context(), followerID, followedID); err != nil {
		if errors.Is(err, follow.ErrSelfFollow) {
			return middleware.BadRequest("Cannot follow yourself")
		}
		if errors.Is(err, follow.ErrGuestNotFound) {
			return middleware.NotFound("Guest not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (h *GuestHandler) Unfollow(c *fiber.Ctx) error {
	followerID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	followedID, err := uuid.Parse(c.Params("guestId"))
	if err != nil {
		return middleware.BadRequest("Invalid guest ID")
	}

	if err := h.followService.Unfollow(c.Context(), followerID, followedID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (h *GuestHandler) ListFollowers(c *fiber.Ctx) error {
	guestID, err := uuid.Parse(c.Params("guestId"))
	if err != nil {
		return middleware.BadRequest("Invalid guest ID")
	}

	followers, err := h.followService.ListFollowers(c.Context(), guestID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"followers": followers})
}

func (h *GuestHandler) ListFollowing(c *fiber.Ctx) error {
	guestID, err := uuid.Parse(c.Params("guestId"))
	if err != nil {
		return middleware.BadRequest("Invalid guest ID")
	}

	following, err := h.followService.ListFollowing(c.Context(), guestID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"following": following})
}
