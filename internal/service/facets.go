package service

import (
	"sort"

	"github.com/czegarraro/backend/internal/domain"
)

// FacetSet enumerates the distinct values observed for each filterable
// dimension across the current problem collection. Sets are sorted ascending
// so repeated calls over the same snapshot yield identical output.
type FacetSet struct {
	Statuses            []string
	ImpactLevels        []string
	SeverityLevels      []string
	ManagementZones     []string
	AffectedEntityTypes []string
	EntityTags          []string
	EvidenceTypes       []string
}

// CollectFacets scans the full collection and derives the facet sets used to
// populate filter UIs. No caching happens here; callers decide.
func CollectFacets(problems []domain.Problem) FacetSet {
	statuses := map[string]struct{}{}
	impacts := map[string]struct{}{}
	severities := map[string]struct{}{}
	zones := map[string]struct{}{}
	entityTypes := map[string]struct{}{}
	tags := map[string]struct{}{}
	evidence := map[string]struct{}{}

	for i := range problems {
		p := &problems[i]
		addFacet(statuses, string(p.Status))
		addFacet(impacts, string(p.ImpactLevel))
		addFacet(severities, string(p.SeverityLevel))
		addFacet(zones, p.ManagementZone)
		addFacet(evidence, p.EvidenceType)
		for _, entityType := range p.AffectedEntityTypes {
			addFacet(entityTypes, entityType)
		}
		for _, tag := range p.EntityTags {
			addFacet(tags, tag)
		}
	}

	return FacetSet{
		Statuses:            sortedKeys(statuses),
		ImpactLevels:        sortedKeys(impacts),
		SeverityLevels:      sortedKeys(severities),
		ManagementZones:     sortedKeys(zones),
		AffectedEntityTypes: sortedKeys(entityTypes),
		EntityTags:          sortedKeys(tags),
		EvidenceTypes:       sortedKeys(evidence),
	}
}

func addFacet(set map[string]struct{}, val string) {
	if val != "" {
		set[val] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
