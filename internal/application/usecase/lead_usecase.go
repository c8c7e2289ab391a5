package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hylatrack/leads-api/internal/application/audit"
	"github.com/hylatrack/leads-api/internal/application/dto"
	"github.com/hylatrack/leads-api/internal/domain"
	"github.com/hylatrack/leads-api/internal/domain/entity"
	"github.com/hylatrack/leads-api/internal/domain/rbac"
	"github.com/hylatrack/leads-api/internal/domain/repository"
	"github.com/hylatrack/leads-api/pkg/walink"
)

const (
	// MaxImageBytes tamaño máximo de una imagen adjunta (5 MiB).
	MaxImageBytes = 5 << 20
	// SignedURLTTL vigencia de las URLs firmadas de imágenes.
	SignedURLTTL = 6 * time.Hour
)

// LeadUseCase ciclo de vida de leads: CRUD, workflow de estados, asignaciones e imágenes.
// Cada mutación deja exactamente una entrada en la bitácora de auditoría.
type LeadUseCase struct {
	leads   repository.LeadRepository
	images  repository.LeadImageRepository
	users   repository.UserRepository
	blobs   repository.BlobStore
	auditor *audit.Recorder
}

// NewLeadUseCase construye el ciclo de vida de leads.
func NewLeadUseCase(
	leads repository.LeadRepository,
	images repository.LeadImageRepository,
	users repository.UserRepository,
	blobs repository.BlobStore,
	auditor *audit.Recorder,
) *LeadUseCase {
	return &LeadUseCase{leads: leads, images: images, users: users, blobs: blobs, auditor: auditor}
}

// List devuelve los leads visibles para el actor, opcionalmente filtrados por
// estado, ordenados por created_at descendente. ADMIN ve todo, JEFE su equipo,
// el resto solo los propios.
func (uc *LeadUseCase) List(ctx context.Context, actor *entity.User, statusFilter string) ([]*entity.Lead, error) {
	filter := repository.LeadFilter{}
	switch actor.Role {
	case entity.RoleAdmin:
		// sin filtro de alcance
	case entity.RoleJefe:
		filter.TeamID = actor.TeamID
	default:
		filter.OwnerUserID = actor.UID
	}
	if statusFilter != "" {
		status := entity.LeadStatus(statusFilter)
		if !status.Valid() {
			return nil, domain.ErrInvalidLeadStatus
		}
		filter.Status = status
	}
	return uc.leads.List(ctx, filter)
}

// Get obtiene un lead por ID; nil si no existe.
func (uc *LeadUseCase) Get(ctx context.Context, id string) (*entity.Lead, error) {
	return uc.leads.GetByID(ctx, id)
}

// Create da de alta un lead. El número de WhatsApp debe ser solo dígitos (9-15).
// Dueño y equipo quedan fijos al creador. Si el creador puede encargarse de demos
// y no indicó encargado, queda asignado él mismo.
func (uc *LeadUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateLeadRequest) (string, error) {
	if !walink.IsValidWhatsapp(in.WhatsappNumber) {
		return "", domain.ErrInvalidWhatsapp
	}
	status := entity.LeadStatus(in.Status)
	if in.Status == "" {
		status = entity.LeadNuevo
	}
	if !status.Valid() {
		return "", domain.ErrInvalidLeadStatus
	}
	country := strings.TrimSpace(in.Country)
	if country == "" {
		country = "Chile"
	}

	var demoUser *string
	switch {
	case in.DemoUserID != "":
		if err := uc.validateDemoUser(ctx, in.DemoUserID); err != nil {
			return "", err
		}
		demoUser = &in.DemoUserID
	case actor.Role.CanAssignDemo():
		uid := actor.UID
		demoUser = &uid
	}

	now := time.Now().UTC()
	lead := &entity.Lead{
		ID:             uuid.New().String(),
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		Occupation:     strings.TrimSpace(in.Occupation),
		WhatsappNumber: in.WhatsappNumber,
		AddressLine:    strings.TrimSpace(in.AddressLine),
		City:           strings.TrimSpace(in.City),
		Region:         strings.TrimSpace(in.Region),
		Country:        country,
		Status:         status,
		Notes:          strings.TrimSpace(in.Notes),
		OwnerUserID:    actor.UID,
		DemoUserID:     demoUser,
		TeamID:         actor.TeamID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.leads.Create(ctx, lead); err != nil {
		return "", err
	}
	uc.auditor.Record(ctx, actor, entity.ActionCreate, entity.EntityLead, lead.ID, actor.TeamID,
		nil, audit.LeadSnapshot(lead))
	return lead.ID, nil
}

// Update aplica cambios parciales a un lead y audita snapshots completos.
//
// Clasificación de la acción, por precedencia: cambio de dueño -> ASSIGN;
// cambio de estado -> STATUS_CHANGE; cualquier otro -> UPDATE. Un cambio de
// dueño solo se aplica si el actor puede reasignar el lead; si no, se ignora
// en silencio y el resto de los cambios procede.
func (uc *LeadUseCase) Update(ctx context.Context, actor *entity.User, leadID string, in dto.UpdateLeadRequest) (*entity.Lead, error) {
	before, err := uc.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if before == nil {
		return nil, domain.ErrLeadNotFound
	}

	updated := *before
	if in.FirstName != nil {
		updated.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		updated.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Occupation != nil {
		updated.Occupation = strings.TrimSpace(*in.Occupation)
	}
	if in.WhatsappNumber != nil {
		if !walink.IsValidWhatsapp(*in.WhatsappNumber) {
			return nil, domain.ErrInvalidWhatsapp
		}
		updated.WhatsappNumber = *in.WhatsappNumber
	}
	if in.AddressLine != nil {
		updated.AddressLine = strings.TrimSpace(*in.AddressLine)
	}
	if in.City != nil {
		updated.City = strings.TrimSpace(*in.City)
	}
	if in.Region != nil {
		updated.Region = strings.TrimSpace(*in.Region)
	}
	if in.Country != nil {
		country := strings.TrimSpace(*in.Country)
		if country == "" {
			country = "Chile"
		}
		updated.Country = country
	}
	if in.Notes != nil {
		updated.Notes = strings.TrimSpace(*in.Notes)
	}

	statusChanged := false
	if in.Status != nil {
		status := entity.LeadStatus(*in.Status)
		if !status.Valid() {
			return nil, domain.ErrInvalidLeadStatus
		}
		updated.Status = status
		statusChanged = true
	}

	ownerChanged := false
	if in.OwnerUserID != nil && *in.OwnerUserID != "" {
		if rbac.CanReassignLead(actor, before, *in.OwnerUserID) {
			updated.OwnerUserID = *in.OwnerUserID
			ownerChanged = true
		}
	}

	if in.DemoUserID != nil {
		if *in.DemoUserID == "" {
			updated.DemoUserID = nil
		} else {
			if err := uc.validateDemoUser(ctx, *in.DemoUserID); err != nil {
				return nil, err
			}
			updated.DemoUserID = in.DemoUserID
		}
	}

	updated.UpdatedAt = time.Now().UTC()
	if err := uc.leads.Update(ctx, &updated); err != nil {
		return nil, err
	}

	action := entity.ActionUpdate
	if statusChanged {
		action = entity.ActionStatusChange
	}
	if ownerChanged {
		action = entity.ActionAssign
	}
	uc.auditor.Record(ctx, actor, action, entity.EntityLead, leadID, updated.TeamID,
		audit.LeadSnapshot(before), audit.LeadSnapshot(&updated))
	return &updated, nil
}

// QuickStatus acción rápida: solo cambia el estado del lead.
func (uc *LeadUseCase) QuickStatus(ctx context.Context, actor *entity.User, leadID, status string) (*entity.Lead, error) {
	if !entity.LeadStatus(status).Valid() {
		return nil, domain.ErrInvalidLeadStatus
	}
	return uc.Update(ctx, actor, leadID, dto.UpdateLeadRequest{Status: &status})
}

// QuickAssignDemo acción rápida: asigna (o limpia, con id vacío) el encargado de demo.
func (uc *LeadUseCase) QuickAssignDemo(ctx context.Context, actor *entity.User, leadID, demoUserID string) (*entity.Lead, error) {
	return uc.Update(ctx, actor, leadID, dto.UpdateLeadRequest{DemoUserID: &demoUserID})
}

// ListImages devuelve las imágenes del lead, cada una con una URL firmada recién
// generada (6 horas de vigencia). Si la firma falla se conserva la URL almacenada.
func (uc *LeadUseCase) ListImages(ctx context.Context, leadID string) ([]*entity.LeadImage, error) {
	images, err := uc.images.ListByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		if img.StoragePath == "" {
			continue
		}
		if url, err := uc.blobs.SignedURL(ctx, img.StoragePath, SignedURLTTL); err == nil && url != "" {
			img.URL = url
		}
	}
	return images, nil
}

// UploadImage valida formato y tamaño, sube el binario y persiste los metadatos.
// La ruta de almacenamiento se deriva del lead y de un identificador nuevo.
func (uc *LeadUseCase) UploadImage(ctx context.Context, actor *entity.User, leadID, filename, contentType string, data []byte) (*entity.LeadImage, error) {
	if !walink.AllowedImageExtension(filename) {
		return nil, domain.ErrImageFormat
	}
	if len(data) > MaxImageBytes {
		return nil, domain.ErrImageTooLarge
	}
	ext := strings.ToLower(filename[strings.LastIndex(filename, ".")+1:])
	imageID := uuid.New().String()
	storagePath := fmt.Sprintf("leads/%s/%s.%s", leadID, imageID, ext)

	if err := uc.blobs.Upload(ctx, storagePath, data, contentType); err != nil {
		return nil, fmt.Errorf("subir imagen: %w", err)
	}
	url, err := uc.blobs.SignedURL(ctx, storagePath, SignedURLTTL)
	if err != nil {
		return nil, fmt.Errorf("firmar url: %w", err)
	}

	image := &entity.LeadImage{
		ID:          imageID,
		LeadID:      leadID,
		StoragePath: storagePath,
		URL:         url,
		UploadedBy:  actor.UID,
		UploadedAt:  time.Now().UTC(),
	}
	if err := uc.images.Create(ctx, image); err != nil {
		return nil, err
	}
	uc.auditor.Record(ctx, actor, entity.ActionImageUpload, entity.EntityImage, imageID, actor.TeamID,
		nil, audit.ImageSnapshot(image))
	return image, nil
}

// validateDemoUser verifica que el encargado de demo exista y tenga un rol asignable.
func (uc *LeadUseCase) validateDemoUser(ctx context.Context, uid string) error {
	user, err := uc.users.GetByUID(ctx, uid)
	if err != nil {
		return err
	}
	if user == nil || !user.Role.CanAssignDemo() {
		return domain.ErrInvalidDemoUser
	}
	return nil
}
