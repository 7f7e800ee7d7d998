package api

import (
	"github.com/0xcafe-io/iz"
	"github.com/fatali-fataliyev/household_ledger/internal/ledger"
)

func (api *Api) ListCategoriesHandler(r *iz.Request, ownerID int64) iz.Responder {
	kind := ledger.Kind(r.URL.Query().Get("type"))

	categories, err := api.Service.ListCategories(r.Context(), kind)
	if err != nil {
		return failure(r.Request, "list categories", err)
	}
	return iz.Respond().Status(200).JSON(mapItems(categories, CategoryToHttp))
}

func (api *Api) CreateCategoryHandler(r *iz.Request, ownerID int64) iz.Responder {
	var req CreateCategoryRequest
	if err := api.decode(r, "category_create", &req); err != nil {
		return failure(r.Request, "parse create category request", err)
	}

	id, err := api.Service.CreateCategory(r.Context(), ledger.NewCategory{
		Name:     req.Name,
		Kind:     ledger.Kind(req.Type),
		ParentID: req.ParentID,
		Icon:     req.Icon,
		Color:    req.Color,
	})
	if err != nil {
		return failure(r.Request, "create category", err)
	}
	return created(id)
}

func (api *Api) UpdateCategoryHandler(r *iz.Request, ownerID int64) iz.Responder {
	id, err := pathID(r)
	if err != nil {
		return failure(r.Request, "update category", err)
	}

	var req UpdateCategoryRequest
	if err := api.decode(r, "category_update", &req); err != nil {
		return failure(r.Request, "parse update category request", err)
	}

	n, err := api.Service.UpdateCategory(r.Context(), id, ledger.CategoryPatch{
		Name:     req.Name,
		Icon:     req.Icon,
		Color:    req.Color,
		ParentID: req.ParentID,
	})
	if err != nil {
		return failure(r.Request, "update category", err)
	}
	return affected(n)
}

func (api *Api) DeleteCategoryHandler(r *iz.Request, ownerID int64) iz.Responder {
	id, err := pathID(r)
	if err != nil {
		return failure(r.Request, "delete category", err)
	}

	n, err := api.Service.DeleteCategory(r.Context(), id)
	if err != nil {
		return failure(r.Request, "delete category", err)
	}
	return affected(n)
}
