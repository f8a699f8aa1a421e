package pagination

import "fmt"

// Validate validates pagination parameters against the configuration.
func (p Params) Validate(cfg Config) error {
	if p.Page < 1 {
		return fmt.Errorf("%w: page must be a positive integer", ErrInvalidParams)
	}
	if p.Limit < 1 || p.Limit > cfg.MaxLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidParams, cfg.MaxLimit)
	}
	return nil
}

// WithDefaults applies default values from cfg to p.
//
// Rules:
//   - If page <= 0, set to cfg.DefaultPage
//   - If limit <= 0, set to cfg.DefaultLimit
//   - If limit > cfg.MaxLimit, cap to cfg.MaxLimit
func (p Params) WithDefaults(cfg Config) Params {
	if p.Page <= 0 {
		p.Page = cfg.DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = cfg.DefaultLimit
	}
	if p.Limit > cfg.MaxLimit {
		p.Limit = cfg.MaxLimit
	}
	return p
}
