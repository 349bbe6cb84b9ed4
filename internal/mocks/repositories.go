// Package mocks provides in-memory repositories for tests.
package mocks

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zetroo/catalog-service/internal/domain"
	"github.com/zetroo/catalog-service/internal/repository"
)

// UserStore is an in-memory repository.UserRepository.
type UserStore struct {
	mu    sync.Mutex
	users []domain.User
	// Err, when set, is returned by every call.
	Err error
}

// NewUserStore seeds the store with users.
func NewUserStore(users ...domain.User) *UserStore {
	return &UserStore{users: append([]domain.User(nil), users...)}
}

func (s *UserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	user.ID = primitive.NewObjectID()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.users = append(s.users, *user)
	return nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.users {
		if s.users[i].Email == email {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *UserStore) List(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]domain.User{}, s.users...), nil
}

// CountByEmail reports how many records share email.
func (s *UserStore) CountByEmail(email string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, u := range s.users {
		if u.Email == email {
			n++
		}
	}
	return n
}

// ProductStore is an in-memory repository.ProductRepository. List evaluates
// the query built by repository.BuildProductQuery.
type ProductStore struct {
	mu       sync.Mutex
	products []domain.Product
	Err      error
	Lookups  int
}

// NewProductStore seeds the store, assigning ids where missing.
func NewProductStore(products ...domain.Product) *ProductStore {
	s := &ProductStore{}
	for _, p := range products {
		if p.ID().IsZero() {
			p.SetID(primitive.NewObjectID())
		}
		s.products = append(s.products, p)
	}
	return s
}

func (s *ProductStore) Create(_ context.Context, product domain.Product) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return primitive.NilObjectID, s.Err
	}
	id := primitive.NewObjectID()
	product.SetID(id)
	product.StampCreated(time.Now().UTC())
	s.products = append(s.products, product)
	return id, nil
}

func (s *ProductStore) GetByID(_ context.Context, id string) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Lookups++
	if s.Err != nil {
		return nil, s.Err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	for _, p := range s.products {
		if p.ID() == oid {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *ProductStore) List(_ context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	query := repository.BuildProductQuery(filter)
	out := make([]domain.Product, 0)
	for _, p := range s.products {
		if MatchProduct(query, p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// All returns a snapshot of stored products.
func (s *ProductStore) All() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product{}, s.products...)
}

// MatchProduct evaluates the subset of MongoDB query semantics emitted by
// repository.BuildProductQuery: equality, $gt, $in, $exists, $or and regex.
func MatchProduct(query bson.D, p domain.Product) bool {
	for _, elem := range query {
		if !matchElem(elem, p) {
			return false
		}
	}
	return true
}

func matchElem(elem bson.E, p domain.Product) bool {
	if elem.Key == "$or" {
		for _, alt := range elem.Value.(bson.A) {
			if MatchProduct(alt.(bson.D), p) {
				return true
			}
		}
		return false
	}

	val, present := productField(p, elem.Key)
	switch cond := elem.Value.(type) {
	case bson.D:
		for _, op := range cond {
			if !matchOperator(op, val, present) {
				return false
			}
		}
		return true
	case primitive.Regex:
		s, ok := val.(string)
		if !present || !ok {
			return false
		}
		return regexp.MustCompile("(?" + cond.Options + ")" + cond.Pattern).MatchString(s)
	default:
		return present && equalValues(val, cond)
	}
}

func matchOperator(op bson.E, val any, present bool) bool {
	switch op.Key {
	case "$exists":
		return present == op.Value.(bool)
	case "$gt":
		got, ok := toFloat(val)
		limit, _ := toFloat(op.Value)
		return present && ok && got > limit
	case "$in":
		if !present {
			return false
		}
		for _, candidate := range op.Value.([]string) {
			if val == candidate {
				return true
			}
		}
		return false
	default:
		panic(fmt.Sprintf("mocks: unsupported operator %s", op.Key))
	}
}

func productField(p domain.Product, key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

func equalValues(a, b any) bool {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if okA && okB {
		return fa == fb
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
