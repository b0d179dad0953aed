package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"wedding-feed/internal/middleware"
	"wedding-feed/internal/service/media"
)

const maxUploadSize = 10 * 1024 * 1024

type MediaHandler struct {
	mediaService media.Service
}

func NewMediaHandler(mediaService media.Service) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload accepts a multipart file and returns the public URL to embed in a
// post or story.
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	guestID, err := middleware.GetGuestID(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	if file.Size > maxUploadSize {
		return middleware.BadRequest("File size must be less than 10MB")
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	if !strings.HasPrefix(mimeType, "image/") && !strings.HasPrefix(mimeType, "video/") {
		return middleware.BadRequest("Only image and video uploads are allowed")
	}

	fileReader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer fileReader.Close()

	url, err := h.mediaService.Upload(c.Context(), guestID, file.Filename, file.Size, mimeType, fileReader)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
