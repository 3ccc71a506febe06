package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/evseew/PEcoinDashboard-Backend/models"
)

type registerWebhookRequest struct {
	WebhookId string            `json:"webhookId"`
	URL       string            `json:"url"`
	Events    []string          `json:"events"`
	Headers   map[string]string `json:"headers"`
	Secret    string            `json:"secret"`
	Active    *bool             `json:"active"`
}

func (h *Handler) RegisterWebhook(c *fiber.Ctx) error {
	var body registerWebhookRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	active := true
	if body.Active != nil {
		active = *body.Active
	}
	registered, err := h.notifier.Register(models.Webhook{
		WebhookId: body.WebhookId,
		URL:       body.URL,
		Events:    body.Events,
		Headers:   body.Headers,
		Secret:    body.Secret,
		Active:    active,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "webhook": registered})
}

func (h *Handler) ListWebhooks(c *fiber.Ctx) error {
	webhooks := h.notifier.List()
	return c.JSON(fiber.Map{"success": true, "webhooks": webhooks, "count": len(webhooks)})
}

func (h *Handler) UnregisterWebhook(c *fiber.Ctx) error {
	if !h.notifier.Unregister(c.Params("webhookId")) {
		return fiber.NewError(fiber.StatusNotFound, "webhook not found")
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) TestWebhook(c *fiber.Ctx) error {
	result, err := h.notifier.TestWebhook(c.Params("webhookId"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return c.JSON(fiber.Map{"success": result.Success, "delivery": result})
}
