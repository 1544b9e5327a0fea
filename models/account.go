package models

import (
	"strings"

	"contapf-server/utils"
)

// Account types the service expects. They are not enforced.
const (
	AccountTypeSavings  = "Savings"
	AccountTypeChecking = "Checking"
	AccountTypePayroll  = "Payroll"
)

// Account represents a personal (ContaPF) bank account
type Account struct {
	ID            int    `json:"id,omitempty"`
	Branch        int    `json:"branch"`
	AccountNumber int    `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	FullName      string `json:"fullName"`
}

// AccountRequest represents the request body for creating/updating an account
type AccountRequest struct {
	ID            int    `json:"id,omitempty"`
	Branch        int    `json:"branch"`
	AccountNumber int    `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	FullName      string `json:"fullName"`
}

// NamePatchRequest represents the request body for a full-name patch
type NamePatchRequest struct {
	FullName *string `json:"fullName"`
}

// ToAccount converts AccountRequest to Account. The id is left to the repository.
func (ar *AccountRequest) ToAccount() Account {
	return Account{
		Branch:        ar.Branch,
		AccountNumber: ar.AccountNumber,
		AccountType:   ar.AccountType,
		FullName:      ar.FullName,
	}
}

// UpdateFrom overwrites every mutable field with the values of other. ID is kept.
func (a *Account) UpdateFrom(other Account) {
	a.Branch = other.Branch
	a.AccountNumber = other.AccountNumber
	a.AccountType = other.AccountType
	a.FullName = other.FullName
}

// GetDisplayName returns the holder name followed by branch and account number
func (a *Account) GetDisplayName() string {
	var b strings.Builder
	b.WriteString(a.FullName)
	b.WriteString(" ")
	b.WriteString(utils.FormatBranchAccount(a.Branch, a.AccountNumber))
	return b.String()
}

// ValidateFields checks required fields and rejects digits in text fields.
func (a *Account) ValidateFields() error {
	if a.FullName == "" {
		return &ValidationError{Field: "fullName", Message: "fullName is required"}
	}
	if a.AccountType == "" {
		return &ValidationError{Field: "accountType", Message: "accountType is required"}
	}
	if a.Branch == 0 {
		return &ValidationError{Field: "branch", Message: "branch is required"}
	}
	if a.AccountNumber == 0 {
		return &ValidationError{Field: "accountNumber", Message: "accountNumber is required"}
	}

	if utils.ContainsDigit(a.FullName) {
		return &ValidationError{Field: "fullName", Message: "fullName cannot contain digits"}
	}
	if utils.ContainsDigit(a.AccountType) {
		return &ValidationError{Field: "accountType", Message: "accountType cannot contain digits"}
	}

	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}
