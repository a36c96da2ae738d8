package handlers

import (
	"errors"
	"strconv"
	"strings"

	"quizadmin/internal/repositories"
	"quizadmin/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// blobDeleter removes stored image blobs once the record stops referencing
// them; satisfied by storage.LocalStore.
type blobDeleter interface {
	Delete(publicPath string) error
}

// cleanupBlob drops a no-longer-referenced image. External URLs are left
// alone; blob deletion failures never fail the request.
func cleanupBlob(blobs blobDeleter, path string) {
	if blobs == nil || path == "" || !strings.HasPrefix(path, "/") {
		return
	}
	_ = blobs.Delete(path)
}

// parseID reads a positive uint path parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// repoError maps repository errors to the envelope: unknown ids are 404,
// everything else 500.
func repoError(c *fiber.Ctx, err error, notFoundMsg string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return utils.NotFound(c, notFoundMsg)
	}
	return utils.InternalError(c, "database error")
}
