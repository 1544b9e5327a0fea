package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"contapf-server/config"
	"contapf-server/models"
	"contapf-server/repository"
	"contapf-server/utils"
)

type AccountHandler struct {
	repo         *repository.AccountRepository
	configLoader *config.ConfigLoader
}

func NewAccountHandler(repo *repository.AccountRepository, configLoader *config.ConfigLoader) *AccountHandler {
	return &AccountHandler{
		repo:         repo,
		configLoader: configLoader,
	}
}

func (h *AccountHandler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.repo.GetAll())
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id")
	if !ok {
		return
	}

	account, err := h.repo.GetByID(id)
	if err != nil {
		writeRepositoryError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) GetByAccountNumber(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := intVar(w, r, "accountNumber")
	if !ok {
		return
	}

	account, err := h.repo.GetByAccountNumber(accountNumber)
	if err != nil {
		writeRepositoryError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) GetByBranch(w http.ResponseWriter, r *http.Request) {
	branch, ok := intVar(w, r, "branch")
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, h.repo.GetByBranch(branch))
}

func (h *AccountHandler) GetCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.CountResponse{Count: h.repo.Count()})
}

func (h *AccountHandler) GetLast(w http.ResponseWriter, r *http.Request) {
	account, err := h.repo.GetLast()
	if err != nil {
		writeRepositoryError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) GetAccountTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.configLoader.GetAccountTypes())
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var accountReq models.AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&accountReq); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	account := accountReq.ToAccount()
	h.warnUnknownType(r, account)

	created, err := h.repo.Create(account)
	if err != nil {
		writeRepositoryError(w, r, err)
		return
	}

	log.WithContext(r.Context()).Infof("Created account %d", created.ID)
	writeJSON(w, http.StatusCreated, created)
}

// CreateAccounts handles batch creation. Invalid items are skipped; with
// ?report=true the response lists them instead of returning the whole collection.
func (h *AccountHandler) CreateAccounts(w http.ResponseWriter, r *http.Request) {
	var accountReqs []models.AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&accountReqs); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	accounts := make([]models.Account, 0, len(accountReqs))
	for i := range accountReqs {
		account := accountReqs[i].ToAccount()
		h.warnUnknownType(r, account)
		accounts = append(accounts, account)
	}

	if r.URL.Query().Get("report") == "true" {
		result := h.repo.CreateManyWithReport(accounts)
		log.WithContext(r.Context()).Infof("Batch created %d accounts, rejected %d", len(result.Created), len(result.Failed))
		writeJSON(w, http.StatusCreated, result)
		return
	}

	writeJSON(w, http.StatusCreated, h.repo.CreateMany(accounts))
}

func (h *AccountHandler) DeleteAccounts(w http.ResponseWriter, r *http.Request) {
	h.repo.DeleteAll()
	log.WithContext(r.Context()).Info("Deleted all accounts")
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id")
	if !ok {
		return
	}

	if err := h.repo.DeleteByID(id); err != nil {
		writeRepositoryError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) DeleteByAccountNumber(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := intVar(w, r, "accountNumber")
	if !ok {
		return
	}

	if err := h.repo.DeleteByAccountNumber(accountNumber); err != nil {
		writeRepositoryError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) DeleteByBranch(w http.ResponseWriter, r *http.Request) {
	branch, ok := intVar(w, r, "branch")
	if !ok {
		return
	}

	removed := h.repo.DeleteByBranch(branch)
	log.WithContext(r.Context()).Debugf("Deleted %d accounts of branch %d", removed, branch)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id")
	if !ok {
		return
	}

	var accountReq models.AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&accountReq); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.repo.UpdateByID(id, accountReq.ToAccount())
	if err != nil {
		writeRepositoryError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *AccountHandler) UpdateByAccountNumber(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := intVar(w, r, "accountNumber")
	if !ok {
		return
	}

	var accountReq models.AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&accountReq); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.repo.UpdateByAccountNumber(accountNumber, accountReq.ToAccount())
	if err != nil {
		writeRepositoryError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *AccountHandler) PatchName(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id")
	if !ok {
		return
	}

	name, ok := nameFromRequest(w, r)
	if !ok {
		return
	}

	patched, err := h.repo.PatchNameByID(id, name)
	if err != nil {
		writeRepositoryError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, patched)
}

func (h *AccountHandler) PatchNameByAccountNumber(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := intVar(w, r, "accountNumber")
	if !ok {
		return
	}

	name, ok := nameFromRequest(w, r)
	if !ok {
		return
	}

	patched, err := h.repo.PatchNameByAccountNumber(accountNumber, name)
	if err != nil {
		writeRepositoryError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, patched)
}

func (h *AccountHandler) warnUnknownType(r *http.Request, account models.Account) {
	if account.AccountType != "" && !h.configLoader.IsKnownAccountType(account.AccountType) {
		log.WithContext(r.Context()).Warnf("Account type %q is not in the configured catalog", account.AccountType)
	}
}

// nameFromRequest reads the new full name from a {"fullName": ...} body,
// falling back to the ?name= or ?nome= query parameter.
func nameFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.ContentLength != 0 {
		var patchReq models.NamePatchRequest
		if err := json.NewDecoder(r.Body).Decode(&patchReq); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return "", false
		}
		if patchReq.FullName != nil {
			return *patchReq.FullName, true
		}
	}

	query := r.URL.Query()
	for _, key := range []string{"name", "nome"} {
		if values, ok := query[key]; ok && len(values) > 0 {
			return values[0], true
		}
	}

	http.Error(w, "fullName is required", http.StatusBadRequest)
	return "", false
}

func intVar(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := utils.ParseIntVar(name, mux.Vars(r)[name])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

// writeRepositoryError maps repository errors to HTTP responses
func writeRepositoryError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.Is(err, repository.ErrAccountNotFound):
		http.Error(w, "Account not found", http.StatusNotFound)
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Message, http.StatusBadRequest)
	default:
		log.WithContext(r.Context()).Errorf("Unexpected account error: %v", err)
		http.Error(w, "Bad request", http.StatusBadRequest)
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Error encoding response: %v", err)
	}
}
