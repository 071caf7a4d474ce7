package controllers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"learnsphere/backend/utils"
)

type UploadsController struct {
	Store utils.BlobStore
}

func NewUploadsController(store utils.BlobStore) *UploadsController {
	return &UploadsController{Store: store}
}

// Upload stores the posted file in the blob store and returns its URL.
func (uc *UploadsController) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "Missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.InternalServerError(c, "Could not read file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return utils.InternalServerError(c, "Could not read file")
	}

	url, err := uc.Store.Put(fileHeader.Filename, data)
	if err != nil {
		return utils.InternalServerError(c, "Could not store file")
	}

	return c.JSON(fiber.Map{"url": url})
}
