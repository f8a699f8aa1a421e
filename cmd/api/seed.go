package main

import (
	"context"

	"prompt-library/internal/config"
	"prompt-library/internal/domain/entity"
	catUC "prompt-library/internal/usecase/category"
)

// seedCategories creates the categories listed in the site file. Names that
// already exist are left alone, so it is safe on every start.
func seedCategories(ctx context.Context, svc *catUC.Service, site *config.SiteConfig) error {
	for _, kind := range []entity.CategoryKind{
		entity.CategoryKindPrompt,
		entity.CategoryKindBlog,
		entity.CategoryKindNews,
	} {
		seeds := site.SeedsFor(kind)
		if len(seeds) == 0 {
			continue
		}
		inputs := make([]catUC.CreateInput, 0, len(seeds))
		for _, s := range seeds {
			inputs = append(inputs, catUC.CreateInput{
				Name:        s.Name,
				Description: s.Description,
				Icon:        s.Icon,
				Color:       s.Color,
			})
		}
		if _, err := svc.Seed(ctx, kind, inputs); err != nil {
			return err
		}
	}
	return nil
}
