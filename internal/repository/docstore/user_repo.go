package docstore

import (
	"context"
	"fmt"

	"eventcrm/internal/domain"
)

// profileFields are the user fields owned by a profile update. Omitted optional
// fields are cleared, so a full update really replaces the profile.
var profileFields = []string{
	"first_name", "last_name", "email", "phone_number", "avatar",
	"gender", "job_title", "company", "city", "state",
}

type userRepository struct {
	store domain.Store
}

// NewUserRepository returns a domain.UserRepository backed by the users collection.
func NewUserRepository(store domain.Store) domain.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = newID()
	}
	u.Normalize()
	doc, err := toDocument(u)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, domain.CollectionUsers, doc)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	doc, err := r.store.Get(ctx, domain.CollectionUsers, id)
	if err != nil {
		return nil, err
	}
	return decodeUser(doc)
}

func (r *userRepository) UpdateProfile(ctx context.Context, u *domain.User) error {
	doc, err := toDocument(u)
	if err != nil {
		return err
	}
	fields := make(domain.Document, len(profileFields))
	for _, f := range profileFields {
		v, ok := doc[f]
		if !ok {
			v = ""
		}
		fields[f] = v
	}
	return r.store.UpdateFields(ctx, domain.CollectionUsers, u.ID, fields)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, domain.CollectionUsers, id)
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	docs, err := r.store.Scan(ctx, domain.CollectionUsers)
	if err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(docs))
	for _, doc := range docs {
		u, err := decodeUser(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *userRepository) AppendHostedEvent(ctx context.Context, userID, eventID string) error {
	return r.store.AppendToList(ctx, domain.CollectionUsers, userID, domain.FieldHostedEvents, eventID)
}

func (r *userRepository) AppendAttendedEvent(ctx context.Context, userID, eventID string) error {
	return r.store.AppendToList(ctx, domain.CollectionUsers, userID, domain.FieldAttendedEvents, eventID)
}

func decodeUser(doc domain.Document) (*domain.User, error) {
	u := &domain.User{}
	if err := fromDocument(doc, u); err != nil {
		return nil, fmt.Errorf("user: %w", err)
	}
	u.Normalize()
	return u, nil
}
