package domain

// TokenGrant is the validated result of an OAuth access-token exchange.
type TokenGrant struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
}

// ChargeRequest describes a recurring application charge to create against
// the provider.
type ChargeRequest struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	TrialDays int     `json:"trial_days"`
	ReturnURL string  `json:"return_url"`
	Test      bool    `json:"test"`
}

// RecurringCharge is the validated provider payload for a recurring
// application charge. Status uses the provider's vocabulary and is passed
// through verbatim.
type RecurringCharge struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Price           string `json:"price"`
	Status          string `json:"status"`
	ConfirmationURL string `json:"confirmation_url"`
	TrialDays       int    `json:"trial_days"`
	Test            bool   `json:"test"`
}
