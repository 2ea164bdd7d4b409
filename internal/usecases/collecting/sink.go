package collecting

import "github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/repository"

// Sinks agrupa os destinos de gravação usados pelos coletores
type Sinks struct {
	Performance  repository.AdPerformanceRepository
	Demographics repository.DemographicRepository
	Creatives    repository.CreativeRepository
}
