package repository

import (
	"errors"
	"sync"

	"contapf-server/models"
)

// AccountRepository keeps the accounts in memory, in insertion order.
// Every method holds mu for its whole duration and hands out copies.
type AccountRepository struct {
	mu       sync.Mutex
	accounts []models.Account
	// lastID is the highest id ever assigned; ids are never reused.
	lastID int
}

// NewAccountRepository creates a repository holding seed, with ids 1..len(seed)
func NewAccountRepository(seed []models.Account) *AccountRepository {
	r := &AccountRepository{
		accounts: make([]models.Account, 0, len(seed)),
	}
	for _, account := range seed {
		r.lastID++
		account.ID = r.lastID
		r.accounts = append(r.accounts, account)
	}
	return r
}

// GetAll returns every account in insertion order
func (r *AccountRepository) GetAll() []models.Account {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.snapshot()
}

func (r *AccountRepository) GetByID(id int) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexByID(id)
	if i < 0 {
		return models.Account{}, ErrAccountNotFound
	}
	return r.accounts[i], nil
}

// GetByAccountNumber returns the first account with the given number
func (r *AccountRepository) GetByAccountNumber(accountNumber int) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexByAccountNumber(accountNumber)
	if i < 0 {
		return models.Account{}, ErrAccountNotFound
	}
	return r.accounts[i], nil
}

// GetByBranch returns all accounts of a branch. The result is empty, never nil, when none match.
func (r *AccountRepository) GetByBranch(branch int) []models.Account {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts := make([]models.Account, 0)
	for _, account := range r.accounts {
		if account.Branch == branch {
			accounts = append(accounts, account)
		}
	}
	return accounts
}

func (r *AccountRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.accounts)
}

// GetLast returns the most recently appended account still present
func (r *AccountRepository) GetLast() (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.accounts) == 0 {
		return models.Account{}, ErrAccountNotFound
	}
	return r.accounts[len(r.accounts)-1], nil
}

// Create validates account, assigns the next id and appends it
func (r *AccountRepository) Create(account models.Account) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.create(account)
}

// CreateMany creates each account in order, skipping invalid ones, and
// returns the whole collection afterwards.
func (r *AccountRepository) CreateMany(accounts []models.Account) []models.Account {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range accounts {
		_, _ = r.create(account)
	}
	return r.snapshot()
}

// CreateManyWithReport behaves like CreateMany but reports which items were rejected
func (r *AccountRepository) CreateManyWithReport(accounts []models.Account) models.BatchResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := models.BatchResult{
		Created: make([]models.Account, 0, len(accounts)),
		Failed:  make([]models.BatchFailure, 0),
	}

	for i, account := range accounts {
		created, err := r.create(account)
		if err != nil {
			failure := models.BatchFailure{Index: i, Message: err.Error()}
			var ve *models.ValidationError
			if errors.As(err, &ve) {
				failure.Field = ve.Field
			}
			result.Failed = append(result.Failed, failure)
			continue
		}
		result.Created = append(result.Created, created)
	}

	result.Count = len(r.accounts)
	return result
}

func (r *AccountRepository) DeleteAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts = r.accounts[:0]
}

// DeleteByID removes the account with id. Absent ids leave the collection untouched.
func (r *AccountRepository) DeleteByID(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexByID(id)
	if i < 0 {
		return ErrAccountNotFound
	}
	r.removeAt(i)
	return nil
}

// DeleteByAccountNumber removes the first account with the given number
func (r *AccountRepository) DeleteByAccountNumber(accountNumber int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexByAccountNumber(accountNumber)
	if i < 0 {
		return ErrAccountNotFound
	}
	r.removeAt(i)
	return nil
}

// DeleteByBranch removes every account of branch and returns how many were removed
func (r *AccountRepository) DeleteByBranch(branch int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.accounts[:0]
	for _, account := range r.accounts {
		if account.Branch != branch {
			kept = append(kept, account)
		}
	}
	removed := len(r.accounts) - len(kept)
	r.accounts = kept
	return removed
}

// UpdateByID replaces every field but the id. Validation runs before the lookup.
func (r *AccountRepository) UpdateByID(id int, account models.Account) (models.Account, error) {
	if err := account.ValidateFields(); err != nil {
		return models.Account{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.updateAt(r.indexByID(id), account)
}

// UpdateByAccountNumber replaces every field but the id of the first account
// with accountNumber. Validation runs before the lookup.
func (r *AccountRepository) UpdateByAccountNumber(accountNumber int, account models.Account) (models.Account, error) {
	if err := account.ValidateFields(); err != nil {
		return models.Account{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.updateAt(r.indexByAccountNumber(accountNumber), account)
}

// PatchNameByID overwrites the full name only; the name is not validated
func (r *AccountRepository) PatchNameByID(id int, name string) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.patchNameAt(r.indexByID(id), name)
}

func (r *AccountRepository) PatchNameByAccountNumber(accountNumber int, name string) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.patchNameAt(r.indexByAccountNumber(accountNumber), name)
}

// create expects mu to be held
func (r *AccountRepository) create(account models.Account) (models.Account, error) {
	if err := account.ValidateFields(); err != nil {
		return models.Account{}, err
	}

	account.ID = r.nextID()
	r.lastID = account.ID
	r.accounts = append(r.accounts, account)
	return account, nil
}

// nextID is max(existing ids, last assigned id) + 1, so it is 1 on a fresh empty repository
func (r *AccountRepository) nextID() int {
	maxID := r.lastID
	for _, account := range r.accounts {
		if account.ID > maxID {
			maxID = account.ID
		}
	}
	return maxID + 1
}

func (r *AccountRepository) updateAt(i int, account models.Account) (models.Account, error) {
	if i < 0 {
		return models.Account{}, ErrAccountNotFound
	}
	r.accounts[i].UpdateFrom(account)
	return r.accounts[i], nil
}

func (r *AccountRepository) patchNameAt(i int, name string) (models.Account, error) {
	if i < 0 {
		return models.Account{}, ErrAccountNotFound
	}
	r.accounts[i].FullName = name
	return r.accounts[i], nil
}

func (r *AccountRepository) indexByID(id int) int {
	for i, account := range r.accounts {
		if account.ID == id {
			return i
		}
	}
	return -1
}

func (r *AccountRepository) indexByAccountNumber(accountNumber int) int {
	for i, account := range r.accounts {
		if account.AccountNumber == accountNumber {
			return i
		}
	}
	return -1
}

func (r *AccountRepository) removeAt(i int) {
	r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
}

func (r *AccountRepository) snapshot() []models.Account {
	accounts := make([]models.Account, len(r.accounts))
	copy(accounts, r.accounts)
	return accounts
}
