// Package catalog serves the portfolio content (projects, skills,
// certifications) from an in-memory fixture. Responses are delayed by a
// configurable simulated latency so the frontend's loading states stay
// exercised without a real backing service.
package catalog

import (
	"context"
	"time"

	"github.com/alexswami/portfolio-server/internal/domain"
)

// Service provides read-only portfolio data with a fixed latency contract.
type Service struct {
	latency        time.Duration
	projects       []domain.Project
	skills         []domain.Skill
	certifications []domain.Certification
}

// NewService creates a catalog service with the built-in fixture.
func NewService(latency time.Duration) *Service {
	return &Service{
		latency:        latency,
		projects:       fixtureProjects(),
		skills:         fixtureSkills(),
		certifications: fixtureCertifications(),
	}
}

// wait simulates network latency, honoring context cancellation.
func (s *Service) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	select {
	case <-time.After(s.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Projects returns all portfolio projects.
func (s *Service) Projects(ctx context.Context) ([]domain.Project, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return append([]domain.Project(nil), s.projects...), nil
}

// Skills returns all skills, optionally filtered by category.
func (s *Service) Skills(ctx context.Context, category string) ([]domain.Skill, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if category == "" {
		return append([]domain.Skill(nil), s.skills...), nil
	}
	var filtered []domain.Skill
	for _, skill := range s.skills {
		if skill.Category == category {
			filtered = append(filtered, skill)
		}
	}
	return filtered, nil
}

// Certifications returns all certifications.
func (s *Service) Certifications(ctx context.Context) ([]domain.Certification, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return append([]domain.Certification(nil), s.certifications...), nil
}
