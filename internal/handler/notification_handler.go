package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wedding-feed/internal/domain"
	"wedding-feed/internal/middleware"
	"wedding-feed/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

// List returns the caller's full notification history, newest first.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	guestID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	notifications, err := h.notifService.List(c.Context(), guestID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"notifications": notifications})
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	guestID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	count, err := h.notifService.UnreadCount(c.Context(), guestID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"count": count})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	guestID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	if err := h.notifService.MarkAllRead(c.Context(), guestID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (h *NotificationHandler) RegisterToken(c *fiber.Ctx) error {
	guestID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	var input domain.RegisterPushTokenInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Token == "" {
		return middleware.BadRequest("Token is required")
	}

	if err := h.notifService.RegisterPushToken(c.Context(), guestID, input.Token); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// Send pushes directly to a recipient by ID. The route is unauthenticated so
// event tooling can call it without a guest session.
func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	var input domain.SendNotificationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.RecipientID == uuid.Nil {
		return middleware.BadRequest("recipient_id is required")
	}
	if input.Title == "" || input.Body == "" {
		return middleware.BadRequest("Title and body are required")
	}

	messageID, err := h.notifService.SendDirect(c.Context(), input)
	if err != nil {
		if errors.Is(err, notification.ErrRecipientNotFound) {
			return middleware.NotFound("Recipient not found")
		}
		if errors.Is(err, notification.ErrNoPushToken) {
			return middleware.BadRequest("Recipient has no push token")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message_id": messageID})
}

// SendTest pushes a canned message to the caller's own device.
func (h *NotificationHandler) SendTest(c *fiber.Ctx) error {
	guestID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	messageID, err := h.notifService.SendTest(c.Context(), guestID)
	if err != nil {
		if errors.Is(err, notification.ErrNoPushToken) {
			return middleware.BadRequest("No push token registered")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message_id": messageID})
}
