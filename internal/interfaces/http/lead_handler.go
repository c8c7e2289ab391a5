package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/hylatrack/leads-api/internal/application/audit"
	"github.com/hylatrack/leads-api/internal/application/dto"
	"github.com/hylatrack/leads-api/internal/application/usecase"
	"github.com/hylatrack/leads-api/internal/domain/entity"
	"github.com/hylatrack/leads-api/internal/domain/rbac"
)

// LeadHandler maneja las peticiones HTTP del ciclo de vida de leads.
type LeadHandler struct {
	uc      *usecase.LeadUseCase
	auditor *audit.Recorder
}

// NewLeadHandler construye el handler.
func NewLeadHandler(uc *usecase.LeadUseCase, auditor *audit.Recorder) *LeadHandler {
	return &LeadHandler{uc: uc, auditor: auditor}
}

// loadAccessible obtiene el lead y verifica que el actor pueda verlo.
// Devuelve nil y ya responde al cliente cuando no corresponde continuar.
func (h *LeadHandler) loadAccessible(c *fiber.Ctx, actor *entity.User) (*entity.Lead, error) {
	id := c.Params("id")
	if id == "" {
		return nil, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	lead, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return nil, respondError(c, err)
	}
	if lead == nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "LEAD_NOT_FOUND", Message: "lead no encontrado"})
	}
	if !rbac.CanAccessLead(actor, lead) {
		return nil, c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tienes acceso a este lead"})
	}
	return lead, nil
}

// List godoc
// @Summary      Listar leads visibles para el actor
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtro por estado"
// @Success      200     {array}   dto.LeadResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	actor := GetActor(c)
	leads, err := h.uc.List(c.Context(), actor, c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		out = append(out, dto.ToLeadResponse(lead))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear lead
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeadRequest  true  "Datos del lead"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	actor := GetActor(c)
	var in dto.CreateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.FirstName == "" || in.WhatsappNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "first_name y whatsapp_number son requeridos"})
	}
	id, err := h.uc.Create(c.Context(), actor, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// Get godoc
// @Summary      Ficha de un lead con enlaces de WhatsApp y Maps
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lead"
// @Success      200  {object}  dto.LeadDetailResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [get]
func (h *LeadHandler) Get(c *fiber.Ctx) error {
	actor := GetActor(c)
	lead, err := h.loadAccessible(c, actor)
	if lead == nil {
		return err
	}
	return c.JSON(dto.ToLeadDetailResponse(lead, actor.Name))
}

// Update godoc
// @Summary      Actualizar lead
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lead"
// @Param        body  body  dto.UpdateLeadRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [put]
func (h *LeadHandler) Update(c *fiber.Ctx) error {
	actor := GetActor(c)
	lead, err := h.loadAccessible(c, actor)
	if lead == nil {
		return err
	}
	var in dto.UpdateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), actor, lead.ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToLeadResponse(out))
}

// QuickStatus godoc
// @Summary      Acción rápida: cambiar estado
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lead"
// @Param        body  body  dto.QuickStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/status [post]
func (h *LeadHandler) QuickStatus(c *fiber.Ctx) error {
	actor := GetActor(c)
	lead, err := h.loadAccessible(c, actor)
	if lead == nil {
		return err
	}
	var in dto.QuickStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.QuickStatus(c.Context(), actor, lead.ID, in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToLeadResponse(out))
}

// AssignDemo godoc
// @Summary      Acción rápida: asignar encargado de demo
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lead"
// @Param        body  body  dto.AssignDemoRequest  true  "UID del encargado (vacío limpia)"
// @Success      200   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/demo-user [post]
func (h *LeadHandler) AssignDemo(c *fiber.Ctx) error {
	actor := GetActor(c)
	lead, err := h.loadAccessible(c, actor)
	if lead == nil {
		return err
	}
	var in dto.AssignDemoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.QuickAssignDemo(c.Context(), actor, lead.ID, in.DemoUserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToLeadResponse(out))
}

// ListImages godoc
// @Summary      Listar imágenes del lead con URLs firmadas vigentes
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lead"
// @Success      200  {array}   dto.LeadImageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/images [get]
func (h *LeadHandler) ListImages(c *fiber.Ctx) error {
	actor := GetActor(c)
	lead, err := h.loadAccessible(c, actor)
	if lead == nil {
		return err
	}
	images, err := h.uc.ListImages(c.Context(), lead.ID)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.LeadImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, dto.ToLeadImageResponse(img))
	}
	return c.JSON(out)
}

// UploadImage godoc
// @Summary      Subir imagen del lead
// @Tags         leads
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true  "ID del lead"
// @Param        image  formData  file    true  "Imagen (jpg, jpeg, png, webp, máx 5 MB)"
// @Success      201    {object}  dto.LeadImageResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/images [post]
func (h *LeadHandler) UploadImage(c *fiber.Ctx) error {
	actor := GetActor(c)
	lead, err := h.loadAccessible(c, actor)
	if lead == nil {
		return err
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "el campo image es requerido"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, usecase.MaxImageBytes+1))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	out, err := h.uc.UploadImage(c.Context(), actor, lead.ID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToLeadImageResponse(out))
}

// AuditLog godoc
// @Summary      Últimos movimientos del lead
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del lead"
// @Param        limit  query  int     false  "Límite de entradas"  default(20)
// @Success      200    {array}   dto.AuditLogResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/audit [get]
func (h *LeadHandler) AuditLog(c *fiber.Ctx) error {
	actor := GetActor(c)
	lead, err := h.loadAccessible(c, actor)
	if lead == nil {
		return err
	}
	entries, err := h.auditor.ListRecent(c.Context(), entity.EntityLead, lead.ID, c.QueryInt("limit", audit.DefaultListLimit))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ToAuditLogResponse(e))
	}
	return c.JSON(out)
}
