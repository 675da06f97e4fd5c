package catalog

import "github.com/escbch/TrainingApp-2/internal/models"

// Catalog is the read-only source of selectable training plans.
type Catalog interface {
	Plans() []models.Plan
	PlanByID(id string) (models.Plan, bool)
}

// InMemory is a fixed, in-memory plan catalog.
type InMemory struct {
	plans []models.Plan
}

var _ Catalog = (*InMemory)(nil)

// NewInMemory creates a catalog over the given plans.
func NewInMemory(plans []models.Plan) *InMemory {
	return &InMemory{plans: plans}
}

// Builtin returns the default plan catalog.
func Builtin() *InMemory {
	return NewInMemory([]models.Plan{
		{ID: "powerbuilding-3day", Name: "Powerbuilding 3-Day", Weeks: 8, DaysPerWeek: 3},
		{ID: "hypertrophy-4day", Name: "Hypertrophy 4-Day", Weeks: 10, DaysPerWeek: 4},
		{ID: "strength-5day", Name: "Strength 5-Day", Weeks: 12, DaysPerWeek: 5},
	})
}

// Plans returns all plans in catalog order.
func (c *InMemory) Plans() []models.Plan {
	out := make([]models.Plan, len(c.plans))
	copy(out, c.plans)
	return out
}

// PlanByID returns the plan with the given id, if present.
func (c *InMemory) PlanByID(id string) (models.Plan, bool) {
	for _, p := range c.plans {
		if p.ID == id {
			return p, true
		}
	}
	return models.Plan{}, false
}
