package api

import (
	"fmt"

	"github.com/0xcafe-io/iz"
	"github.com/fatali-fataliyev/household_ledger/internal/ledger"
)

// ListSavingsHandler returns every saving, or the latest entry of one month
// when ?month= is given (null when there is none).
func (api *Api) ListSavingsHandler(r *iz.Request, ownerID int64) iz.Responder {
	if month := r.URL.Query().Get("month"); month != "" {
		saving, err := api.Service.GetSavingByMonth(r.Context(), ownerID, month)
		if err != nil {
			return failure(r.Request, "get saving by month", err)
		}
		if saving == nil {
			return iz.Respond().Status(200).JSON(nil)
		}
		return iz.Respond().Status(200).JSON(SavingToHttp(*saving))
	}

	savings, err := api.Service.ListSavings(r.Context(), ownerID)
	if err != nil {
		return failure(r.Request, "list savings", err)
	}
	return iz.Respond().Status(200).JSON(mapItems(savings, SavingToHttp))
}

func (api *Api) SaveSavingHandler(r *iz.Request, ownerID int64) iz.Responder {
	var req CreateSavingRequest
	if err := api.decode(r, "saving_create", &req); err != nil {
		return failure(r.Request, "parse save saving request", err)
	}

	id, err := api.Service.CreateSaving(r.Context(), ownerID, ledger.NewSaving{
		Amount:      req.Amount,
		AccountType: ledger.AccountType(req.AccountType),
		Month:       req.Month,
		Note:        req.Note,
	})
	if err != nil {
		return failure(r.Request, "create saving", err)
	}
	return created(id)
}

func (api *Api) UpdateSavingHandler(r *iz.Request, ownerID int64) iz.Responder {
	id, err := pathID(r)
	if err != nil {
		return failure(r.Request, "update saving", err)
	}

	var req UpdateSavingRequest
	if err := api.decode(r, "saving_update", &req); err != nil {
		return failure(r.Request, "parse update saving request", err)
	}

	changes := ledger.SavingChanges{Amount: req.Amount, Note: req.Note}
	if req.AccountType != nil {
		accountType := ledger.AccountType(*req.AccountType)
		changes.AccountType = &accountType
	}
	n, err := api.Service.UpdateSaving(r.Context(), ownerID, id, changes)
	if err != nil {
		return failure(r.Request, "update saving", err)
	}
	return affected(n)
}

func (api *Api) DeleteSavingHandler(r *iz.Request, ownerID int64) iz.Responder {
	id, err := pathID(r)
	if err != nil {
		return failure(r.Request, "delete saving", err)
	}

	n, err := api.Service.DeleteSaving(r.Context(), ownerID, id)
	if err != nil {
		return failure(r.Request, "delete saving", err)
	}
	return affected(n)
}

func (api *Api) GetSavingsTotalsHandler(r *iz.Request, ownerID int64) iz.Responder {
	totals, err := api.Service.GetSavingsTotals(r.Context(), ownerID)
	if err != nil {
		return failure(r.Request, "get savings totals", err)
	}
	return iz.Respond().Status(200).JSON(SavingsTotalsResponse{
		TotalSavings:     totals.TotalSavings,
		TotalWithdrawals: totals.TotalWithdrawals,
		Balance:          totals.Balance,
	})
}

// WITHDRAWALS

func (api *Api) ListWithdrawalsHandler(r *iz.Request, ownerID int64) iz.Responder {
	withdrawals, err := api.Service.ListWithdrawals(r.Context(), ownerID)
	if err != nil {
		return failure(r.Request, "list withdrawals", err)
	}
	return iz.Respond().Status(200).JSON(mapItems(withdrawals, WithdrawalToHttp))
}

func (api *Api) SaveWithdrawalHandler(r *iz.Request, ownerID int64) iz.Responder {
	var req CreateWithdrawalRequest
	if err := api.decode(r, "withdrawal_create", &req); err != nil {
		return failure(r.Request, "parse save withdrawal request", err)
	}

	id, err := api.Service.CreateWithdrawal(r.Context(), ownerID, ledger.NewWithdrawal{
		Amount:         req.Amount,
		AccountType:    ledger.AccountType(req.AccountType),
		WithdrawalDate: req.WithdrawalDate,
		Reason:         req.Reason,
	})
	if err != nil {
		return failure(r.Request, "create withdrawal", err)
	}
	return created(id)
}

func (api *Api) DeleteWithdrawalHandler(r *iz.Request, ownerID int64) iz.Responder {
	id, err := pathID(r)
	if err != nil {
		return failure(r.Request, "delete withdrawal", err)
	}

	n, err := api.Service.DeleteWithdrawal(r.Context(), ownerID, id)
	if err != nil {
		return failure(r.Request, "delete withdrawal", err)
	}
	return affected(n)
}

// DownloadUserData sends everything the owner recorded as a JSON attachment.
func (api *Api) DownloadUserData(r *iz.Request, ownerID int64) iz.Responder {
	export, err := api.Service.Export(r.Context(), ownerID)
	if err != nil {
		return failure(r.Request, "export data", err)
	}

	resp := ExportResponse{
		ExportedAt:   export.ExportedAt,
		Transactions: mapItems(export.Transactions, TransactionToHttp),
		Budgets:      mapItems(export.Budgets, BudgetToHttp),
		Savings:      mapItems(export.Savings, SavingToHttp),
		Withdrawals:  mapItems(export.Withdrawals, WithdrawalToHttp),
	}
	filename := fmt.Sprintf("household-ledger-%s.json", export.ExportedAt.Format("2006-01-02"))
	return iz.Respond().
		Status(200).
		Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename)).
		JSON(resp)
}
