package service

import (
	"context"
	"log"

	"linkup/internal/model"
	"linkup/internal/repository"
)

// SearchService handles username search and the per-user search history.
type SearchService struct {
	userRepo    repository.UserRepository
	historyRepo repository.SearchHistoryRepository
}

func NewSearchService(userRepo repository.UserRepository, historyRepo repository.SearchHistoryRepository) *SearchService {
	return &SearchService{
		userRepo:    userRepo,
		historyRepo: historyRepo,
	}
}

// Search finds users. An empty query lists everyone and records
// nothing; a non-empty query does a substring match and records the
// query in the searcher's history. Recording is idempotent, so
// repeating a search never grows the history.
func (s *SearchService) Search(ctx context.Context, searcher, query string) ([]model.UserSummary, error) {
	if query == "" {
		return s.userRepo.List(ctx)
	}

	users, err := s.userRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := s.historyRepo.Record(ctx, searcher, query); err != nil {
		// History is cosmetic; a failed insert should not fail the search.
		log.Printf("[SearchService] Failed to record search for %s: %v", searcher, err)
	}

	return users, nil
}

// Recent returns the user's most recent distinct queries, newest first.
// The limit is clamped to RecentHistoryLimit.
func (s *SearchService) Recent(ctx context.Context, username string, limit int) ([]model.SearchHistoryEntry, error) {
	if limit <= 0 || limit > model.RecentHistoryLimit {
		limit = model.RecentHistoryLimit
	}
	return s.historyRepo.Recent(ctx, username, limit)
}

// DeleteEntry removes one remembered query; absent pairs are a no-op.
func (s *SearchService) DeleteEntry(ctx context.Context, username, query string) error {
	return s.historyRepo.Delete(ctx, username, query)
}
