package api

import (
	"github.com/0xcafe-io/iz"
	"github.com/fatali-fataliyev/household_ledger/internal/ledger"
)

// dateRange reads the optional start_date and end_date parameters.
func (api *Api) dateRange(r *iz.Request) (ledger.DateRange, error) {
	params := r.URL.Query()
	return ledger.ParseDateRange(params.Get("start_date"), params.Get("end_date"), api.Service.Location())
}

func (api *Api) ListTransactionsHandler(r *iz.Request, ownerID int64) iz.Responder {
	dr, err := api.dateRange(r)
	if err != nil {
		return failure(r.Request, "invalid filter parameters", err)
	}

	transactions, err := api.Service.ListTransactions(r.Context(), ownerID, dr)
	if err != nil {
		return failure(r.Request, "list transactions", err)
	}
	return iz.Respond().Status(200).JSON(mapItems(transactions, TransactionToHttp))
}

func (api *Api) GetTransactionByIdHandler(r *iz.Request, ownerID int64) iz.Responder {
	id, err := pathID(r)
	if err != nil {
		return failure(r.Request, "get transaction", err)
	}

	t, err := api.Service.GetTransaction(r.Context(), ownerID, id)
	if err != nil {
		return failure(r.Request, "get transaction", err)
	}
	return iz.Respond().Status(200).JSON(TransactionToHttp(t))
}

func (api *Api) SaveTransactionHandler(r *iz.Request, ownerID int64) iz.Responder {
	var req CreateTransactionRequest
	if err := api.decode(r, "transaction_create", &req); err != nil {
		return failure(r.Request, "parse save transaction request", err)
	}

	id, err := api.Service.CreateTransaction(r.Context(), ownerID, ledger.NewTransaction{
		CategoryID:      req.CategoryID,
		Amount:          req.Amount,
		Kind:            ledger.Kind(req.Type),
		Person:          req.Person,
		Description:     req.Description,
		TransactionDate: req.TransactionDate,
	})
	if err != nil {
		return failure(r.Request, "create transaction", err)
	}
	return created(id)
}

func (api *Api) UpdateTransactionHandler(r *iz.Request, ownerID int64) iz.Responder {
	id, err := pathID(r)
	if err != nil {
		return failure(r.Request, "update transaction", err)
	}

	var req UpdateTransactionRequest
	if err := api.decode(r, "transaction_update", &req); err != nil {
		return failure(r.Request, "parse update transaction request", err)
	}

	n, err := api.Service.UpdateTransaction(r.Context(), ownerID, id, ledger.TransactionChanges{
		CategoryID:      req.CategoryID,
		Amount:          req.Amount,
		Person:          req.Person,
		Description:     req.Description,
		TransactionDate: req.TransactionDate,
	})
	if err != nil {
		return failure(r.Request, "update transaction", err)
	}
	return affected(n)
}

func (api *Api) DeleteTransactionHandler(r *iz.Request, ownerID int64) iz.Responder {
	id, err := pathID(r)
	if err != nil {
		return failure(r.Request, "delete transaction", err)
	}

	n, err := api.Service.DeleteTransaction(r.Context(), ownerID, id)
	if err != nil {
		return failure(r.Request, "delete transaction", err)
	}
	return affected(n)
}

// STATISTICS

func (api *Api) GetBalanceHandler(r *iz.Request, ownerID int64) iz.Responder {
	dr, err := api.dateRange(r)
	if err != nil {
		return failure(r.Request, "invalid filter parameters", err)
	}

	b, err := api.Service.GetBalance(r.Context(), ownerID, dr)
	if err != nil {
		return failure(r.Request, "get balance", err)
	}
	return iz.Respond().Status(200).JSON(BalanceResponse{Income: b.Income, Expense: b.Expense, Balance: b.Balance})
}

func (api *Api) GetSpendingByCategoryHandler(r *iz.Request, ownerID int64) iz.Responder {
	dr, err := api.dateRange(r)
	if err != nil {
		return failure(r.Request, "invalid filter parameters", err)
	}

	totals, err := api.Service.GetSpendingByCategory(r.Context(), ownerID, dr)
	if err != nil {
		return failure(r.Request, "get spending by category", err)
	}
	return iz.Respond().Status(200).JSON(CategoryTotalsToHttp(totals))
}
