package api

import (
	"github.com/0xcafe-io/iz"
	"github.com/fatali-fataliyev/household_ledger/internal/ledger"
)

func (api *Api) ListBudgetsHandler(r *iz.Request, ownerID int64) iz.Responder {
	budgets, err := api.Service.ListBudgets(r.Context(), ownerID, r.URL.Query().Get("month"))
	if err != nil {
		return failure(r.Request, "list budgets", err)
	}
	return iz.Respond().Status(200).JSON(mapItems(budgets, BudgetToHttp))
}

func (api *Api) GetBudgetStatusHandler(r *iz.Request, ownerID int64) iz.Responder {
	statuses, err := api.Service.GetBudgetStatus(r.Context(), ownerID, r.URL.Query().Get("month"))
	if err != nil {
		return failure(r.Request, "get budget status", err)
	}
	return iz.Respond().Status(200).JSON(mapItems(statuses, BudgetStatusToHttp))
}

func (api *Api) SaveBudgetHandler(r *iz.Request, ownerID int64) iz.Responder {
	var req CreateBudgetRequest
	if err := api.decode(r, "budget_create", &req); err != nil {
		return failure(r.Request, "parse save budget request", err)
	}

	id, err := api.Service.CreateBudget(r.Context(), ownerID, ledger.NewBudget{
		CategoryID:     req.CategoryID,
		Amount:         req.Amount,
		Month:          req.Month,
		AlertThreshold: req.AlertThreshold,
	})
	if err != nil {
		return failure(r.Request, "create budget", err)
	}
	return created(id)
}

func (api *Api) UpdateBudgetHandler(r *iz.Request, ownerID int64) iz.Responder {
	id, err := pathID(r)
	if err != nil {
		return failure(r.Request, "update budget", err)
	}

	var req UpdateBudgetRequest
	if err := api.decode(r, "budget_update", &req); err != nil {
		return failure(r.Request, "parse update budget request", err)
	}

	n, err := api.Service.UpdateBudget(r.Context(), ownerID, id, ledger.BudgetChanges{
		Amount:         req.Amount,
		AlertThreshold: req.AlertThreshold,
	})
	if err != nil {
		return failure(r.Request, "update budget", err)
	}
	return affected(n)
}

func (api *Api) DeleteBudgetHandler(r *iz.Request, ownerID int64) iz.Responder {
	id, err := pathID(r)
	if err != nil {
		return failure(r.Request, "delete budget", err)
	}

	n, err := api.Service.DeleteBudget(r.Context(), ownerID, id)
	if err != nil {
		return failure(r.Request, "delete budget", err)
	}
	return affected(n)
}
