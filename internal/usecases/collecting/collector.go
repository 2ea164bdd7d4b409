package collecting

import (
	"context"
	"fmt"
	"time"

	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/sirupsen/logrus"
)

// Collector busca, normaliza e grava os dados de uma plataforma.
// Falhas de chunk entram em CollectionResult; o erro retornado indica que a
// coleta não chegou a começar (ex.: a hierarquia de anúncios não pôde ser listada).
type Collector interface {
	Platform() domain.Platform
	Supports(collectionType domain.CollectionType) bool
	Collect(ctx context.Context, req Request) (*domain.CollectionResult, error)
}

type Request struct {
	JobID          string
	Integration    *domain.Integration
	Credential     *domain.Credential
	CollectionType domain.CollectionType
	StartDate      time.Time
	EndDate        time.Time
	Tracker        Tracker
}

func (r Request) Fields() logrus.Fields {
	fields := logrus.Fields{
		"job_id":          r.JobID,
		"collection_type": r.CollectionType,
		"start_date":      r.StartDate.Format(time.DateOnly),
		"end_date":        r.EndDate.Format(time.DateOnly),
	}
	if r.Integration != nil {
		fields["integration_id"] = r.Integration.ID
		fields["platform"] = r.Integration.Platform
	}
	return fields
}

func (r Request) tracker() Tracker {
	if r.Tracker == nil {
		return NopTracker{}
	}
	return r.Tracker
}

// ExpandCollectionType traduz "daily" nos tipos que a plataforma suporta
func ExpandCollectionType(c Collector, collectionType domain.CollectionType) []domain.CollectionType {
	if collectionType != domain.CollectionTypeDaily {
		return []domain.CollectionType{collectionType}
	}

	types := make([]domain.CollectionType, 0, 2)
	for _, t := range []domain.CollectionType{domain.CollectionTypeAds, domain.CollectionTypeDemographics} {
		if c.Supports(t) {
			types = append(types, t)
		}
	}
	return types
}

// Registry seleciona o coletor pela plataforma
type Registry struct {
	collectors map[domain.Platform]Collector
}

func NewRegistry(collectors ...Collector) *Registry {
	r := &Registry{collectors: make(map[domain.Platform]Collector, len(collectors))}
	for _, c := range collectors {
		r.collectors[c.Platform()] = c
	}
	return r
}

// Resolve retorna o coletor da plataforma, validando o tipo de coleta
func (r *Registry) Resolve(platform domain.Platform, collectionType domain.CollectionType) (Collector, error) {
	c, ok := r.collectors[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %w: plataforma %s sem coletor", domain.ErrValidation, domain.ErrUnsupportedCollection, platform)
	}

	if !c.Supports(collectionType) {
		return nil, fmt.Errorf("%w: %w: %s não suporta %s", domain.ErrValidation, domain.ErrUnsupportedCollection, platform, collectionType)
	}

	return c, nil
}

func (r *Registry) Platforms() []domain.Platform {
	platforms := make([]domain.Platform, 0, len(r.collectors))
	for _, p := range domain.Platforms {
		if _, ok := r.collectors[p]; ok {
			platforms = append(platforms, p)
		}
	}
	return platforms
}
