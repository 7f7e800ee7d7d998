package api

import (
	"net/http"

	"github.com/0xcafe-io/iz"
)

func (api *Api) Routes() *http.ServeMux {
	server := http.NewServeMux()

	// AUTH ENDPOINTS.
	server.HandleFunc("POST /api/login", iz.Bind(api.LoginHandler))                 // Login with the household passphrase
	server.HandleFunc("GET /api/logout", iz.Bind(api.LogoutHandler))                // Logout
	server.HandleFunc("GET /api/me", iz.Bind(api.authed(api.MeHandler)))            // Account Info
	server.HandleFunc("GET /api/export", iz.Bind(api.authed(api.DownloadUserData))) // Download User Data

	// CATEGORY ENDPOINTS.
	server.HandleFunc("GET /api/categories", iz.Bind(api.authed(api.ListCategoriesHandler)))         // List categories, ?type=income|expense
	server.HandleFunc("POST /api/categories", iz.Bind(api.authed(api.CreateCategoryHandler)))        // Create category
	server.HandleFunc("PATCH /api/categories/{id}", iz.Bind(api.authed(api.UpdateCategoryHandler)))  // Update category
	server.HandleFunc("DELETE /api/categories/{id}", iz.Bind(api.authed(api.DeleteCategoryHandler))) // Delete category

	// TRANSACTION ENDPOINTS.
	server.HandleFunc("GET /api/transactions", iz.Bind(api.authed(api.ListTransactionsHandler)))          // List transactions, ?start_date&end_date
	server.HandleFunc("GET /api/transactions/{id}", iz.Bind(api.authed(api.GetTransactionByIdHandler)))   // Get transaction by ID
	server.HandleFunc("POST /api/transactions", iz.Bind(api.authed(api.SaveTransactionHandler)))          // Create transaction
	server.HandleFunc("PATCH /api/transactions/{id}", iz.Bind(api.authed(api.UpdateTransactionHandler)))  // Update transaction
	server.HandleFunc("DELETE /api/transactions/{id}", iz.Bind(api.authed(api.DeleteTransactionHandler))) // Delete transaction

	// STATISTICS ENDPOINTS.
	server.HandleFunc("GET /api/stats/balance", iz.Bind(api.authed(api.GetBalanceHandler)))                // Income, expense and balance
	server.HandleFunc("GET /api/stats/by-category", iz.Bind(api.authed(api.GetSpendingByCategoryHandler))) // Expense totals per category

	// BUDGET ENDPOINTS.
	server.HandleFunc("GET /api/budgets", iz.Bind(api.authed(api.ListBudgetsHandler)))            // List budgets of ?month
	server.HandleFunc("GET /api/budgets/status", iz.Bind(api.authed(api.GetBudgetStatusHandler))) // Budget usage of ?month
	server.HandleFunc("POST /api/budgets", iz.Bind(api.authed(api.SaveBudgetHandler)))            // Create budget
	server.HandleFunc("PATCH /api/budgets/{id}", iz.Bind(api.authed(api.UpdateBudgetHandler)))    // Update budget
	server.HandleFunc("DELETE /api/budgets/{id}", iz.Bind(api.authed(api.DeleteBudgetHandler)))   // Delete budget

	// REPORT ENDPOINTS.
	server.HandleFunc("GET /api/reports/monthly", iz.Bind(api.authed(api.GetMonthlySummaryHandler)))   // Summary of ?month
	server.HandleFunc("GET /api/reports/archive", iz.Bind(api.authed(api.GetMonthsArchiveHandler)))    // Months with transactions
	server.HandleFunc("GET /api/reports/compare", iz.Bind(api.authed(api.GetMonthsComparisonHandler))) // Compare ?months=a,b

	// SAVINGS ENDPOINTS.
	server.HandleFunc("GET /api/savings", iz.Bind(api.authed(api.ListSavingsHandler)))                  // List savings, or one ?month
	server.HandleFunc("GET /api/savings/totals", iz.Bind(api.authed(api.GetSavingsTotalsHandler)))      // Savings totals
	server.HandleFunc("POST /api/savings", iz.Bind(api.authed(api.SaveSavingHandler)))                  // Create saving
	server.HandleFunc("PATCH /api/savings/{id}", iz.Bind(api.authed(api.UpdateSavingHandler)))          // Update saving
	server.HandleFunc("DELETE /api/savings/{id}", iz.Bind(api.authed(api.DeleteSavingHandler)))         // Delete saving
	server.HandleFunc("GET /api/withdrawals", iz.Bind(api.authed(api.ListWithdrawalsHandler)))          // List withdrawals
	server.HandleFunc("POST /api/withdrawals", iz.Bind(api.authed(api.SaveWithdrawalHandler)))          // Create withdrawal
	server.HandleFunc("DELETE /api/withdrawals/{id}", iz.Bind(api.authed(api.DeleteWithdrawalHandler))) // Delete withdrawal

	server.HandleFunc("GET /healthz", iz.Bind(api.HealthHandler))

	return server
}
