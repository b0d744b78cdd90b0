package domain

// Plan describes a subscription plan from the static catalog. Plans are not
// persisted per shop; shops reference them by ID only.
type Plan struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	TrialDays int     `json:"trial_days"`
	Test      bool    `json:"test"`
}

// PlanCatalog holds the plans a shop can subscribe to.
type PlanCatalog struct {
	plans map[string]Plan
}

// NewPlanCatalog builds the static catalog. The test flag marks charges as
// test charges against the provider and is derived from the deployment
// environment, not per plan.
func NewPlanCatalog(test bool) *PlanCatalog {
	return &PlanCatalog{
		plans: map[string]Plan{
			"basic": {
				ID:        "basic",
				Name:      "Basic Plan",
				Price:     29.00,
				TrialDays: 7,
				Test:      test,
			},
			"premium": {
				ID:        "premium",
				Name:      "Premium Plan",
				Price:     79.00,
				TrialDays: 7,
				Test:      test,
			},
		},
	}
}

// Get looks up a plan by ID.
func (c *PlanCatalog) Get(id string) (Plan, bool) {
	plan, ok := c.plans[id]
	return plan, ok
}

// List returns all plans in the catalog.
func (c *PlanCatalog) List() []Plan {
	out := make([]Plan, 0, len(c.plans))
	for _, p := range c.plans {
		out = append(out, p)
	}
	return out
}
