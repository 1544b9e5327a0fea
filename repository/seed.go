package repository

import "contapf-server/models"

// DefaultSeed returns the fixture accounts the repository starts with.
// Ids are assigned by NewAccountRepository.
func DefaultSeed() []models.Account {
	return []models.Account{
		{Branch: 1584, AccountNumber: 156145, AccountType: models.AccountTypeSavings, FullName: "Raimundo Felipe Elias Novaes"},
		{Branch: 3456, AccountNumber: 745677, AccountType: models.AccountTypePayroll, FullName: "Sophia Stella Ribeiro"},
		{Branch: 8654, AccountNumber: 346327, AccountType: models.AccountTypeChecking, FullName: "Daniel Murilo Freitas"},
		{Branch: 4568, AccountNumber: 347268, AccountType: models.AccountTypePayroll, FullName: "Sophie Analu Monteiro"},
		{Branch: 1584, AccountNumber: 364573, AccountType: models.AccountTypeSavings, FullName: "Sônia Sophie Costa"},
		{Branch: 1664, AccountNumber: 457226, AccountType: models.AccountTypeChecking, FullName: "Marlene Fabiana das Neves"},
		{Branch: 7457, AccountNumber: 589253, AccountType: models.AccountTypeSavings, FullName: "Marcos Vinicius Raul Joaquim Farias"},
		{Branch: 5374, AccountNumber: 567896, AccountType: models.AccountTypePayroll, FullName: "Joana Isabela Sophia Freitas"},
		{Branch: 5374, AccountNumber: 368484, AccountType: models.AccountTypeChecking, FullName: "Julio César Márcio Jesus"},
		{Branch: 5374, AccountNumber: 645823, AccountType: models.AccountTypePayroll, FullName: "Raimunda Gabrielly Corte Real"},
	}
}
