package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/finlink/internal/finlink/domain"
	"github.com/aussiebroadwan/finlink/internal/finlink/service"
	"github.com/aussiebroadwan/finlink/pkg/httpx"
	"github.com/aussiebroadwan/finlink/pkg/linkapi"
)

// DataHandler serves accounts, transactions and the dashboard.
type DataHandler struct {
	Sessions    *service.SessionService
	Institution *service.InstitutionService
	Dashboard   *service.DashboardService
	Now         func() time.Time
}

// HandleAccounts handles GET /v1/accounts
//
//	@Summary		Linked accounts
//	@Description	Accounts fetched by the session's last successful link or refresh.
//	@Tags			Data
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	AccountsResponse
//	@Failure		401	{object}	httpx.ErrorResponse	"code, message"
//	@Router			/v1/accounts [get].
func (h *DataHandler) HandleAccounts(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r, h.Sessions)
	if !ok {
		return
	}

	snap := sess.Controller.Snapshot()
	httpx.WriteJSON(w, http.StatusOK, AccountsResponse{
		Linked:      snap.Linked,
		Institution: snap.Institution,
		Accounts:    snap.Accounts,
	})
}

// HandleTransactions handles GET /v1/transactions
//
//	@Summary		Institution transactions
//	@Description	Transactions of the linked institution between start and end (YYYY-MM-DD).
//	@Description	Without dates the last 30 days are returned.
//	@Tags			Data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			start	query		string	false	"First day, YYYY-MM-DD"
//	@Param			end		query		string	false	"Last day, YYYY-MM-DD"
//	@Success		200		{object}	TransactionsResponse
//	@Failure		401		{object}	httpx.ErrorResponse	"code, message"
//	@Failure		409		{object}	httpx.ErrorResponse	"not_linked"
//	@Failure		422		{object}	httpx.ErrorResponse	"validation_error"
//	@Failure		502		{object}	httpx.ErrorResponse	"link_failed"
//	@Router			/v1/transactions [get].
func (h *DataHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentSession(w, r, h.Sessions); !ok {
		return
	}

	dr, fields := parseDateRange(r, h.now())
	if fields != nil {
		httpx.WriteValidationError(w, fields)
		return
	}

	txs, err := h.Institution.Transactions(r.Context(), dr)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, TransactionsResponse{
		StartDate:    dr.Start.Format(linkapi.DateLayout),
		EndDate:      dr.End.Format(linkapi.DateLayout),
		Transactions: txs,
	})
}

// HandleDashboard handles GET /v1/dashboard
//
//	@Summary		Dashboard
//	@Description	Summary, recent transactions, spending by category and 30 day balance history.
//	@Tags			Dashboard
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	domain.Dashboard
//	@Failure		401	{object}	httpx.ErrorResponse	"code, message"
//	@Router			/v1/dashboard [get].
func (h *DataHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r, h.Sessions)
	if !ok {
		return
	}

	d, err := h.Dashboard.Dashboard(r.Context(), sess.Owner)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}

// HandleTransactionPage handles GET /v1/dashboard/transactions
//
//	@Summary		Transactions page
//	@Tags			Dashboard
//	@Produce		json
//	@Security		BearerAuth
//	@Param			period		query		string	false	"week, month (default), year or all"
//	@Param			type		query		string	false	"income, expense or transfer"
//	@Param			category	query		string	false	"Category name"
//	@Param			q			query		string	false	"Merchant or category search"
//	@Success		200			{object}	service.TransactionPage
//	@Failure		401			{object}	httpx.ErrorResponse	"code, message"
//	@Failure		422			{object}	httpx.ErrorResponse	"validation_error"
//	@Router			/v1/dashboard/transactions [get].
func (h *DataHandler) HandleTransactionPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r, h.Sessions)
	if !ok {
		return
	}

	q := r.URL.Query()
	fields := map[string]string{}

	period, err := domain.ParsePeriod(q.Get("period"))
	if err != nil {
		fields["period"] = "must be one of week, month, year, all"
	}
	typ := domain.TransactionType(q.Get("type"))
	if typ != "" && !typ.Valid() {
		fields["type"] = "must be one of income, expense, transfer"
	}
	if len(fields) > 0 {
		httpx.WriteValidationError(w, fields)
		return
	}

	page, err := h.Dashboard.Transactions(r.Context(), sess.Owner, service.TransactionFilter{
		Period:   period,
		Type:     typ,
		Category: q.Get("category"),
		Search:   q.Get("q"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, page)
}

// HandleAddManual handles POST /v1/transactions/manual
//
//	@Summary		Add a manual transaction
//	@Description	Expenses are stored negative and income positive whatever sign was typed.
//	@Tags			Dashboard
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		domain.ManualTransactionInput	true	"Transaction"
//	@Success		201		{object}	domain.Transaction
//	@Failure		400		{object}	httpx.ErrorResponse	"invalid_request"
//	@Failure		401		{object}	httpx.ErrorResponse	"code, message"
//	@Failure		422		{object}	httpx.ErrorResponse	"validation_error"
//	@Router			/v1/transactions/manual [post].
func (h *DataHandler) HandleAddManual(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r, h.Sessions)
	if !ok {
		return
	}

	var in domain.ManualTransactionInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		writeBadJSON(w)
		return
	}

	tx, err := h.Dashboard.AddManual(r.Context(), sess.Owner, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, tx)
}

func (h *DataHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

func parseDateRange(r *http.Request, now time.Time) (linkapi.DateRange, map[string]string) {
	q := r.URL.Query()
	dr := linkapi.DateRange{Start: now.AddDate(0, 0, -30), End: now}
	fields := map[string]string{}

	if s := q.Get("start"); s != "" {
		t, err := time.Parse(linkapi.DateLayout, s)
		if err != nil {
			fields["start"] = "must be a date (YYYY-MM-DD)"
		}
		dr.Start = t
	}
	if s := q.Get("end"); s != "" {
		t, err := time.Parse(linkapi.DateLayout, s)
		if err != nil {
			fields["end"] = "must be a date (YYYY-MM-DD)"
		}
		dr.End = t
	}
	if len(fields) == 0 && dr.End.Before(dr.Start) {
		fields["end"] = "must not be before start"
	}

	if len(fields) > 0 {
		return dr, fields
	}
	return dr, nil
}
