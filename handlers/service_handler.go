package handlers

import (
	"github.com/solacecare/counseling_backend/database"
	"github.com/solacecare/counseling_backend/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Details     string   `json:"details,omitempty"`
	GreatFor    string   `json:"great_for,omitempty"`
	Duration    int      `json:"duration" validate:"required,gt=0"`
	Price       float64  `json:"price" validate:"gte=0"`
	Mode        string   `json:"mode" validate:"required,oneof=video-meeting phone-call"`
	Tags        []string `json:"tags,omitempty"`
}

func CreateService(c *fiber.Ctx) error {
	var req CreateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	service := models.Service{
		Name:        req.Name,
		Description: req.Description,
		Details:     req.Details,
		GreatFor:    req.GreatFor,
		Duration:    req.Duration,
		Price:       req.Price,
		Mode:        req.Mode,
		Tags:        req.Tags,
	}
	if err := database.DB.Create(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create service"})
	}

	return c.Status(fiber.StatusCreated).JSON(service)
}

func GetAllServices(c *fiber.Ctx) error {
	var serviceList []models.Service
	if err := database.DB.Order("price asc").Find(&serviceList).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch services"})
	}
	return c.JSON(serviceList)
}

func GetServiceByID(c *fiber.Ctx) error {
	serviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service ID format"})
	}

	var service models.Service
	if err := database.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}
	return c.JSON(service)
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Details     *string  `json:"details,omitempty"`
	GreatFor    *string  `json:"great_for,omitempty"`
	Duration    *int     `json:"duration,omitempty" validate:"omitempty,gt=0"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Mode        *string  `json:"mode,omitempty" validate:"omitempty,oneof=video-meeting phone-call"`
	Tags        []string `json:"tags,omitempty"`
}

func UpdateService(c *fiber.Ctx) error {
	serviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service ID format"})
	}

	var req UpdateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var service models.Service
	if err := database.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Details != nil {
		service.Details = *req.Details
	}
	if req.GreatFor != nil {
		service.GreatFor = *req.GreatFor
	}
	if req.Duration != nil {
		service.Duration = *req.Duration
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Mode != nil {
		service.Mode = *req.Mode
	}
	if req.Tags != nil {
		service.Tags = req.Tags
	}

	if err := database.DB.Save(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update service"})
	}

	return c.JSON(service)
}

func DeleteService(c *fiber.Ctx) error {
	serviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service ID format"})
	}

	res := database.DB.Delete(&models.Service{}, "id = ?", serviceID)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete service"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}

	return c.JSON(fiber.Map{"message": "Service deleted successfully"})
}
