package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/finlink/internal/finlink/domain"
	"github.com/aussiebroadwan/finlink/internal/finlink/store"
	"github.com/aussiebroadwan/finlink/pkg/linkapi"
)

// InstitutionService reads data of the linked institution with the shared
// access credential.
type InstitutionService struct {
	Data        *LinkDataService
	Credentials *store.Credentials
}

func NewInstitutionService(data *LinkDataService, creds *store.Credentials) *InstitutionService {
	return &InstitutionService{Data: data, Credentials: creds}
}

// Transactions returns domain.ErrNotLinked when no credential is stored.
func (s *InstitutionService) Transactions(ctx context.Context, r linkapi.DateRange) ([]linkapi.Transaction, error) {
	access, err := s.Credentials.AccessCredential(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.ErrNotLinked
	}
	if err != nil {
		return nil, err
	}

	return s.Data.FetchTransactions(ctx, access, r)
}
