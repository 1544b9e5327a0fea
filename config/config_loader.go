package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"contapf-server/models"
)

const (
	accountTypesFile = "account_types.json"
	seedAccountsFile = "accounts.json"
)

// AccountTypeItem represents an account type configuration item
type AccountTypeItem struct {
	Name       string `json:"name"`
	Portuguese string `json:"portuguese"`
}

// ConfigData holds all configuration data
type ConfigData struct {
	AccountTypes []AccountTypeItem `json:"accountTypes"`
	Accounts     []models.Account  `json:"accounts"`
}

// ConfigLoader handles loading configuration from JSON files
type ConfigLoader struct {
	dir    string
	config ConfigData
}

// DefaultAccountTypes returns the account types used when no catalog file exists
func DefaultAccountTypes() []AccountTypeItem {
	return []AccountTypeItem{
		{Name: models.AccountTypeSavings, Portuguese: "Poupança"},
		{Name: models.AccountTypeChecking, Portuguese: "Conta Corrente"},
		{Name: models.AccountTypePayroll, Portuguese: "Conta Salário"},
	}
}

// NewConfigLoader creates a new config loader reading from dir
func NewConfigLoader(dir string) *ConfigLoader {
	return &ConfigLoader{
		dir: dir,
		config: ConfigData{
			AccountTypes: DefaultAccountTypes(),
		},
	}
}

// LoadConfig loads configuration from JSON files.
// Missing files keep the defaults; unreadable or malformed files are errors.
func (cl *ConfigLoader) LoadConfig() error {
	// Load account types
	if err := cl.loadAccountTypes(filepath.Join(cl.dir, accountTypesFile)); err != nil {
		return fmt.Errorf("failed to load account types: %w", err)
	}

	// Load seed accounts
	if err := cl.loadAccounts(filepath.Join(cl.dir, seedAccountsFile)); err != nil {
		return fmt.Errorf("failed to load seed accounts: %w", err)
	}

	return nil
}

// loadAccountTypes loads account types from JSON file
func (cl *ConfigLoader) loadAccountTypes(filename string) error {
	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var accountTypes struct {
		AccountTypes []AccountTypeItem `json:"accountTypes"`
	}

	if err := json.Unmarshal(data, &accountTypes); err != nil {
		return err
	}

	if len(accountTypes.AccountTypes) > 0 {
		cl.config.AccountTypes = accountTypes.AccountTypes
	}
	return nil
}

// loadAccounts loads seed accounts from JSON file. Every seed must pass validation.
func (cl *ConfigLoader) loadAccounts(filename string) error {
	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var accounts []models.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return err
	}

	for i := range accounts {
		if err := accounts[i].ValidateFields(); err != nil {
			return fmt.Errorf("seed account %d: %w", i, err)
		}
	}

	cl.config.Accounts = accounts
	return nil
}

// GetAccountTypes returns all account types
func (cl *ConfigLoader) GetAccountTypes() []AccountTypeItem {
	return cl.config.AccountTypes
}

// GetSeedAccounts returns the seed accounts from accounts.json, or nil if none were loaded
func (cl *ConfigLoader) GetSeedAccounts() []models.Account {
	return cl.config.Accounts
}

// IsKnownAccountType reports whether name matches a configured type,
// by English or Portuguese name, ignoring case.
func (cl *ConfigLoader) IsKnownAccountType(name string) bool {
	for _, accountType := range cl.config.AccountTypes {
		if strings.EqualFold(accountType.Name, name) || strings.EqualFold(accountType.Portuguese, name) {
			return true
		}
	}
	return false
}
