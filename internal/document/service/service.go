package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/crmhub/crm/backend/go-services/internal/document"
	"github.com/crmhub/crm/backend/go-services/internal/document/repository"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository is the persistence surface shared by the memory and Mongo repos.
type Repository interface {
	Create(ctx context.Context, req *document.Request) (string, error)
	Get(ctx context.Context, id string) (*document.Request, error)
	List(ctx context.Context) ([]*document.Request, error)
}

// Service defines the document operations used by the handler and pipeline.
type Service interface {
	Save(ctx context.Context, req *document.Request) error
	Get(ctx context.Context, id string) (*document.Request, error)
	List(ctx context.Context) ([]*document.Request, error)
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return New(repository.NewMemoryRepo())
}

// NewMongoService returns a Service backed by a MongoDB collection.
// Caller owns the client behind col.
func NewMongoService(ctx context.Context, col *mongo.Collection) Service {
	return New(repository.NewMongoRepo(ctx, col))
}

func New(repo Repository) Service {
	return &documentService{repo: repo}
}

type documentService struct {
	repo Repository
}

func (s *documentService) Save(ctx context.Context, req *document.Request) error {
	if _, err := s.repo.Create(ctx, req); err != nil {
		return fmt.Errorf("%w: %v", document.ErrStorage, err)
	}
	return nil
}

func (s *documentService) Get(ctx context.Context, id string) (*document.Request, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			return nil, document.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", document.ErrStorage, err)
	}
	return d, nil
}

func (s *documentService) List(ctx context.Context) ([]*document.Request, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", document.ErrStorage, err)
	}
	return list, nil
}
