package repository

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contapf-server/models"
)

func newSeededRepository() *AccountRepository {
	return NewAccountRepository(DefaultSeed())
}

func anaSilva() models.Account {
	return models.Account{Branch: 100, AccountNumber: 999, AccountType: "Checking", FullName: "Ana Silva"}
}

func TestNewAccountRepository_Seed(t *testing.T) {
	repo := newSeededRepository()

	accounts := repo.GetAll()
	require.Len(t, accounts, 10)
	for i, account := range accounts {
		assert.Equal(t, i+1, account.ID)
	}
	assert.Equal(t, 10, repo.Count())
}

func TestCreate_AssignsNextID(t *testing.T) {
	repo := newSeededRepository()

	created, err := repo.Create(anaSilva())
	require.NoError(t, err)
	assert.Equal(t, 11, created.ID)
	assert.Equal(t, 11, repo.Count())

	got, err := repo.GetByID(11)
	require.NoError(t, err)
	want := anaSilva()
	want.ID = 11
	assert.Equal(t, want, got)

	last, err := repo.GetLast()
	require.NoError(t, err)
	assert.Equal(t, want, last)
}

func TestCreate_IgnoresInputID(t *testing.T) {
	repo := newSeededRepository()

	input := anaSilva()
	input.ID = 3
	created, err := repo.Create(input)
	require.NoError(t, err)
	assert.Equal(t, 11, created.ID)

	third, err := repo.GetByID(3)
	require.NoError(t, err)
	assert.Equal(t, "Daniel Murilo Freitas", third.FullName)
}

func TestCreate_StrictlyIncreasingIDs(t *testing.T) {
	repo := newSeededRepository()

	previous := 10
	for i := 0; i < 5; i++ {
		before := repo.Count()
		created, err := repo.Create(anaSilva())
		require.NoError(t, err)
		assert.Greater(t, created.ID, previous)
		assert.Equal(t, before+1, repo.Count())
		previous = created.ID
	}
}

func TestCreate_ValidationFailureLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		account models.Account
	}{
		{name: "zero branch", account: models.Account{Branch: 0, AccountNumber: 50, AccountType: "Savings", FullName: "Joao"}},
		{name: "zero account number", account: models.Account{Branch: 10, AccountNumber: 0, AccountType: "Savings", FullName: "Joao"}},
		{name: "missing name", account: models.Account{Branch: 10, AccountNumber: 50, AccountType: "Savings"}},
		{name: "missing type", account: models.Account{Branch: 10, AccountNumber: 50, FullName: "Joao"}},
		{name: "digit in name", account: models.Account{Branch: 10, AccountNumber: 50, AccountType: "Savings", FullName: "Joao 3"}},
		{name: "digit in type", account: models.Account{Branch: 10, AccountNumber: 50, AccountType: "Savings2", FullName: "Joao"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newSeededRepository()
			before := repo.GetAll()

			_, err := repo.Create(tt.account)
			require.Error(t, err)
			var ve *models.ValidationError
			assert.True(t, errors.As(err, &ve))

			assert.Equal(t, before, repo.GetAll())
		})
	}
}

func TestCreate_AfterDeleteAllStartsAfterLastAssignedID(t *testing.T) {
	repo := newSeededRepository()
	repo.DeleteAll()

	created, err := repo.Create(anaSilva())
	require.NoError(t, err)
	assert.Equal(t, 11, created.ID)
}

func TestCreate_AfterDeletingHighestIDDoesNotReuseIt(t *testing.T) {
	repo := newSeededRepository()
	require.NoError(t, repo.DeleteByID(10))

	created, err := repo.Create(anaSilva())
	require.NoError(t, err)
	assert.Equal(t, 11, created.ID)
}

func TestCreate_EmptyRepositoryStartsAtOne(t *testing.T) {
	repo := NewAccountRepository(nil)

	_, err := repo.GetLast()
	assert.ErrorIs(t, err, ErrAccountNotFound)

	created, err := repo.Create(anaSilva())
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
}

func TestCreateMany_SkipsInvalid(t *testing.T) {
	repo := newSeededRepository()

	accounts := repo.CreateMany([]models.Account{
		anaSilva(),
		{Branch: 0, AccountNumber: 50, AccountType: "Savings", FullName: "Joao"},
		{Branch: 200, AccountNumber: 888, AccountType: "Payroll", FullName: "Bruno Lima"},
	})

	require.Len(t, accounts, 12)
	assert.Equal(t, 11, accounts[10].ID)
	assert.Equal(t, "Ana Silva", accounts[10].FullName)
	assert.Equal(t, 12, accounts[11].ID)
	assert.Equal(t, "Bruno Lima", accounts[11].FullName)
}

func TestCreateManyWithReport(t *testing.T) {
	repo := newSeededRepository()

	result := repo.CreateManyWithReport([]models.Account{
		{Branch: 0, AccountNumber: 50, AccountType: "Savings", FullName: "Joao"},
		anaSilva(),
		{Branch: 1, AccountNumber: 2, AccountType: "Savings", FullName: "R2D2"},
	})

	require.Len(t, result.Created, 1)
	assert.Equal(t, 11, result.Created[0].ID)
	require.Len(t, result.Failed, 2)
	assert.Equal(t, 0, result.Failed[0].Index)
	assert.Equal(t, "branch", result.Failed[0].Field)
	assert.Equal(t, 2, result.Failed[1].Index)
	assert.Equal(t, "fullName", result.Failed[1].Field)
	assert.Equal(t, 11, result.Count)
}

func TestGetByAccountNumber(t *testing.T) {
	repo := newSeededRepository()

	account, err := repo.GetByAccountNumber(346327)
	require.NoError(t, err)
	assert.Equal(t, 3, account.ID)

	_, err = repo.GetByAccountNumber(1)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestGetByAccountNumber_FirstMatchWins(t *testing.T) {
	repo := newSeededRepository()

	duplicate := anaSilva()
	duplicate.AccountNumber = 156145
	_, err := repo.Create(duplicate)
	require.NoError(t, err)

	account, err := repo.GetByAccountNumber(156145)
	require.NoError(t, err)
	assert.Equal(t, 1, account.ID)
}

func TestGetByBranch(t *testing.T) {
	repo := newSeededRepository()

	accounts := repo.GetByBranch(5374)
	require.Len(t, accounts, 3)
	assert.Equal(t, []int{8, 9, 10}, ids(accounts))

	none := repo.GetByBranch(1)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGetAll_ReturnsCopy(t *testing.T) {
	repo := newSeededRepository()

	accounts := repo.GetAll()
	accounts[0].FullName = "Changed"

	first, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Raimundo Felipe Elias Novaes", first.FullName)
}

func TestDeleteAll(t *testing.T) {
	repo := newSeededRepository()
	repo.DeleteAll()

	assert.Empty(t, repo.GetAll())
	assert.Equal(t, 0, repo.Count())

	_, err := repo.GetLast()
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestDeleteByID(t *testing.T) {
	repo := newSeededRepository()

	require.NoError(t, repo.DeleteByID(4))
	assert.Equal(t, 9, repo.Count())
	_, err := repo.GetByID(4)
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Equal(t, []int{1, 2, 3, 5, 6, 7, 8, 9, 10}, ids(repo.GetAll()))
}

func TestDeleteByAccountNumber(t *testing.T) {
	repo := newSeededRepository()

	require.NoError(t, repo.DeleteByAccountNumber(645823))
	assert.Equal(t, 9, repo.Count())

	last, err := repo.GetLast()
	require.NoError(t, err)
	assert.Equal(t, 9, last.ID)
}

func TestDeleteByBranch(t *testing.T) {
	repo := newSeededRepository()

	removed := repo.DeleteByBranch(1584)
	assert.Equal(t, 2, removed)
	assert.Empty(t, repo.GetByBranch(1584))
	assert.Equal(t, []int{2, 3, 4, 6, 7, 8, 9, 10}, ids(repo.GetAll()))

	assert.Equal(t, 0, repo.DeleteByBranch(1584))
	assert.Equal(t, 8, repo.Count())
}

func TestMissingKeysDoNotMutate(t *testing.T) {
	repo := newSeededRepository()
	before := repo.GetAll()

	_, err := repo.GetByID(404)
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, err = repo.GetByAccountNumber(404)
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, err = repo.UpdateByID(404, anaSilva())
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, err = repo.UpdateByAccountNumber(404, anaSilva())
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.ErrorIs(t, repo.DeleteByID(404), ErrAccountNotFound)
	assert.ErrorIs(t, repo.DeleteByAccountNumber(404), ErrAccountNotFound)
	_, err = repo.PatchNameByID(404, "Ninguem")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, err = repo.PatchNameByAccountNumber(404, "Ninguem")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	assert.Equal(t, before, repo.GetAll())
}

func TestUpdateByID(t *testing.T) {
	repo := newSeededRepository()

	updated, err := repo.UpdateByID(2, anaSilva())
	require.NoError(t, err)

	want := anaSilva()
	want.ID = 2
	assert.Equal(t, want, updated)

	got, err := repo.GetByID(2)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestUpdateByID_ValidationCheckedFirst(t *testing.T) {
	repo := newSeededRepository()
	before := repo.GetAll()

	_, err := repo.UpdateByID(404, models.Account{Branch: 0})
	var ve *models.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.False(t, errors.Is(err, ErrAccountNotFound))

	_, err = repo.UpdateByID(2, models.Account{Branch: 1, AccountNumber: 2, AccountType: "Savings", FullName: "Ana 9"})
	assert.True(t, errors.As(err, &ve))

	assert.Equal(t, before, repo.GetAll())
}

func TestUpdateByAccountNumber_ValidationCheckedFirst(t *testing.T) {
	repo := newSeededRepository()
	before := repo.GetAll()

	_, err := repo.UpdateByAccountNumber(999999, models.Account{AccountType: "Savings", FullName: "Ana Silva"})
	var ve *models.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "branch", ve.Field)
	assert.False(t, errors.Is(err, ErrAccountNotFound))

	_, err = repo.UpdateByAccountNumber(745677, models.Account{Branch: 1, AccountNumber: 2, AccountType: "Savings", FullName: "Ana 9"})
	assert.True(t, errors.As(err, &ve))

	assert.Equal(t, before, repo.GetAll())
}

func TestUpdateByAccountNumber_KeysByAccountNumber(t *testing.T) {
	repo := newSeededRepository()

	// 3 is both a seed id and absent as an account number
	_, err := repo.UpdateByAccountNumber(3, anaSilva())
	assert.ErrorIs(t, err, ErrAccountNotFound)

	updated, err := repo.UpdateByAccountNumber(346327, anaSilva())
	require.NoError(t, err)
	assert.Equal(t, 3, updated.ID)
	assert.Equal(t, 999, updated.AccountNumber)

	_, err = repo.GetByAccountNumber(346327)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestPatchNameByID(t *testing.T) {
	repo := newSeededRepository()
	before, err := repo.GetByID(3)
	require.NoError(t, err)

	patched, err := repo.PatchNameByID(3, "Nova Pessoa")
	require.NoError(t, err)

	assert.Equal(t, "Nova Pessoa", patched.FullName)
	assert.Equal(t, before.ID, patched.ID)
	assert.Equal(t, before.Branch, patched.Branch)
	assert.Equal(t, before.AccountNumber, patched.AccountNumber)
	assert.Equal(t, before.AccountType, patched.AccountType)

	others := repo.GetAll()
	assert.Equal(t, "Sophia Stella Ribeiro", others[1].FullName)
}

func TestPatchNameByAccountNumber_SkipsValidation(t *testing.T) {
	repo := newSeededRepository()

	patched, err := repo.PatchNameByAccountNumber(745677, "Agent 47")
	require.NoError(t, err)
	assert.Equal(t, 2, patched.ID)
	assert.Equal(t, "Agent 47", patched.FullName)
}

func TestConcurrentCreatesAssignUniqueIDs(t *testing.T) {
	repo := newSeededRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Create(anaSilva())
			_ = repo.GetAll()
		}()
	}
	wg.Wait()

	seen := make(map[int]bool)
	for _, account := range repo.GetAll() {
		assert.False(t, seen[account.ID], "duplicate id %d", account.ID)
		seen[account.ID] = true
	}
	assert.Equal(t, 60, repo.Count())
}

func ids(accounts []models.Account) []int {
	out := make([]int, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, account.ID)
	}
	return out
}
