package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hylatrack/leads-api/internal/application/audit"
	"github.com/hylatrack/leads-api/internal/domain/entity"
	"github.com/hylatrack/leads-api/internal/domain/repository"
	"github.com/hylatrack/leads-api/pkg/logger"
)

// Fakes en memoria para los puertos de persistencia. Guardan copias para que
// las mutaciones posteriores del caller no contaminen lo "persistido".

type memUserRepo struct {
	users map[string]entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, ok := r.users[u.UID]; ok {
		return fmt.Errorf("uid duplicado: %s", u.UID)
	}
	r.users[u.UID] = *u
	return nil
}

func (r *memUserRepo) GetByUID(_ context.Context, uid string) (*entity.User, error) {
	u, ok := r.users[uid]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.UID] = *u
	return nil
}

func (r *memUserRepo) ListAll(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for uid := range r.users {
		u := r.users[uid]
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out, nil
}

func (r *memUserRepo) ListByTeam(_ context.Context, teamID string) ([]*entity.User, error) {
	all, _ := r.ListAll(context.Background())
	out := make([]*entity.User, 0, len(all))
	for _, u := range all {
		if u.TeamID == teamID {
			out = append(out, u)
		}
	}
	return out, nil
}

type memIdentityRepo struct {
	identities map[string]entity.Identity
}

func newMemIdentityRepo() *memIdentityRepo {
	return &memIdentityRepo{identities: map[string]entity.Identity{}}
}

func (r *memIdentityRepo) Create(_ context.Context, id *entity.Identity) error {
	r.identities[id.ID] = *id
	return nil
}

func (r *memIdentityRepo) GetByID(_ context.Context, id string) (*entity.Identity, error) {
	v, ok := r.identities[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *memIdentityRepo) GetByEmail(_ context.Context, email string) (*entity.Identity, error) {
	for id := range r.identities {
		if r.identities[id].Email == email {
			v := r.identities[id]
			return &v, nil
		}
	}
	return nil, nil
}

type memLeadRepo struct {
	leads map[string]entity.Lead
}

func newMemLeadRepo() *memLeadRepo {
	return &memLeadRepo{leads: map[string]entity.Lead{}}
}

func (r *memLeadRepo) Create(_ context.Context, l *entity.Lead) error {
	r.leads[l.ID] = *l
	return nil
}

func (r *memLeadRepo) GetByID(_ context.Context, id string) (*entity.Lead, error) {
	l, ok := r.leads[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *memLeadRepo) Update(_ context.Context, l *entity.Lead) error {
	r.leads[l.ID] = *l
	return nil
}

func (r *memLeadRepo) List(_ context.Context, f repository.LeadFilter) ([]*entity.Lead, error) {
	out := make([]*entity.Lead, 0, len(r.leads))
	for id := range r.leads {
		l := r.leads[id]
		if f.TeamID != "" && l.TeamID != f.TeamID {
			continue
		}
		if f.OwnerUserID != "" && l.OwnerUserID != f.OwnerUserID {
			continue
		}
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type memImageRepo struct {
	images []entity.LeadImage
}

func (r *memImageRepo) Create(_ context.Context, img *entity.LeadImage) error {
	r.images = append(r.images, *img)
	return nil
}

func (r *memImageRepo) ListByLead(_ context.Context, leadID string) ([]*entity.LeadImage, error) {
	out := []*entity.LeadImage{}
	for i := range r.images {
		if r.images[i].LeadID == leadID {
			img := r.images[i]
			out = append(out, &img)
		}
	}
	return out, nil
}

type memAuditRepo struct {
	entries []entity.AuditLogEntry
}

func (r *memAuditRepo) Append(_ context.Context, e *entity.AuditLogEntry) error {
	r.entries = append(r.entries, *e)
	return nil
}

func (r *memAuditRepo) ListRecent(_ context.Context, entityType, entityID string, limit int) ([]*entity.AuditLogEntry, error) {
	out := []*entity.AuditLogEntry{}
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].EntityType == entityType && r.entries[i].EntityID == entityID {
			e := r.entries[i]
			out = append(out, &e)
		}
	}
	return out, nil
}

// byAction filtra las entradas registradas por acción.
func (r *memAuditRepo) byAction(action entity.AuditAction) []entity.AuditLogEntry {
	out := []entity.AuditLogEntry{}
	for _, e := range r.entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

type memBlobStore struct {
	objects map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{objects: map[string][]byte{}}
}

func (s *memBlobStore) Upload(_ context.Context, path string, data []byte, _ string) error {
	s.objects[path] = data
	return nil
}

func (s *memBlobStore) SignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "https://storage.test/" + path + "?firma=abc", nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func newTestRecorder(repo *memAuditRepo) *audit.Recorder {
	return audit.NewRecorder(repo, testLogger())
}
