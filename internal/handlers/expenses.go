package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"spendlog/internal/models"
	"spendlog/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// ExpenseItem represents an expense in the dashboard view.
type ExpenseItem struct {
	ID       int64
	Title    string
	Amount   string
	Category string
	Note     string
	When     string
}

// DashboardViewModel is the data passed to the dashboard template.
type DashboardViewModel struct {
	Username string
	Expenses []ExpenseItem
	Total    string
	Error    string
}

// AddViewModel is the data passed to the add-expense template.
type AddViewModel struct {
	Error    string
	Title    string
	Amount   string
	Category string
	Note     string
}

// Dashboard renders the expense list and total for the signed-in user.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r)

	expenses, err := h.expenses.List(r.Context(), user.ID)
	if err != nil {
		h.log.WithError(err).Error("list expenses failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	total, err := h.expenses.Total(r.Context(), user.ID)
	if err != nil {
		h.log.WithError(err).Error("total expenses failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	items := make([]ExpenseItem, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, expenseItem(e))
	}

	vm := DashboardViewModel{
		Username: user.Username,
		Expenses: items,
		Total:    total.StringFixed(2),
		Error:    deleteNotice(r.URL.Query().Get("delete")),
	}
	h.render(w, "dashboard.html", vm)
}

// AddExpenseForm renders the form to create a new expense.
func (h *Handlers) AddExpenseForm(w http.ResponseWriter, _ *http.Request) {
	h.render(w, "add.html", AddViewModel{})
}

// AddExpense handles the creation of a new expense.
func (h *Handlers) AddExpense(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, "add.html", AddViewModel{Error: "Invalid form submission"})
		return
	}

	user := UserFromContext(r)
	vm := AddViewModel{
		Title:    r.FormValue("title"),
		Amount:   r.FormValue("amount"),
		Category: r.FormValue("category"),
		Note:     r.FormValue("note"),
	}

	_, err := h.expenses.Add(r.Context(), user.ID, vm.Title, vm.Amount, vm.Category, vm.Note)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			vm.Error = vErr.Message
		} else {
			h.log.WithError(err).Error("create expense failed")
			vm.Error = "An error occurred. Please try again."
		}
		h.render(w, "add.html", vm)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// DeleteExpense removes an expense owned by the signed-in user.
func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/dashboard?delete=notfound", http.StatusFound)
		return
	}

	switch err := h.expenses.Delete(r.Context(), user.ID, id); {
	case err == nil:
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	case errors.Is(err, service.ErrNotFound):
		http.Redirect(w, r, "/dashboard?delete=notfound", http.StatusFound)
	case errors.Is(err, service.ErrForbidden):
		h.log.WithFields(logrus.Fields{"user_id": user.ID, "expense_id": id}).
			Warn("delete blocked: expense belongs to another user")
		http.Redirect(w, r, "/dashboard?delete=forbidden", http.StatusFound)
	default:
		h.log.WithError(err).Error("delete expense failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func expenseItem(e models.Expense) ExpenseItem {
	return ExpenseItem{
		ID:       e.ID,
		Title:    e.Title,
		Amount:   e.Amount.StringFixed(2),
		Category: e.Category,
		Note:     e.Note,
		When:     e.CreatedAt.Local().Format("Jan 02, 15:04"),
	}
}

func deleteNotice(code string) string {
	switch code {
	case "notfound":
		return "That expense no longer exists."
	case "forbidden":
		return "You can only delete your own expenses."
	default:
		return ""
	}
}
