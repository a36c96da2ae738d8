package handlers

import (
	"errors"

	"quizadmin/internal/storage"
	"quizadmin/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	store *storage.LocalStore
}

func NewUploadHandler(store *storage.LocalStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload accepts a multipart image and returns its public URL for use in
// category, quiz, question, and banner records.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.BadRequest(c, "image file is required")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return utils.BadRequest(c, "could not read uploaded file")
	}
	defer f.Close()

	url, err := h.store.Save(f, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			return utils.ValidationError(c, map[string][]string{
				"image": {"must be a jpg, jpeg, png, gif or webp file"},
			})
		}
		return utils.InternalError(c, "could not store uploaded file")
	}
	return utils.Created(c, fiber.Map{"url": url})
}
