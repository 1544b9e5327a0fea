package services

import (
	"bytes"
	"fmt"
	"image/png"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"

	"contapf-server/models"
	"contapf-server/utils"
)

const defaultQRSize = 256

// AccountQR is the JSON view of an account QR code
type AccountQR struct {
	QRCodeData    string `json:"qrCodeData"`
	AccountID     int    `json:"accountId"`
	BranchAccount string `json:"branchAccount"`
	DisplayName   string `json:"displayName"`
}

type AccountQRService struct {
	baseURL string
}

func NewAccountQRService(baseURL string) *AccountQRService {
	return &AccountQRService{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Payload returns the data encoded in the QR code of an account
// Format: <baseURL>/<id>?branchAccount=0000-000000
func (s *AccountQRService) Payload(account models.Account) string {
	query := url.Values{}
	query.Set("branchAccount", utils.FormatBranchAccount(account.Branch, account.AccountNumber))
	return fmt.Sprintf("%s/%d?%s", s.baseURL, account.ID, query.Encode())
}

// Describe returns the QR payload together with the account identification
func (s *AccountQRService) Describe(account models.Account) AccountQR {
	return AccountQR{
		QRCodeData:    s.Payload(account),
		AccountID:     account.ID,
		BranchAccount: utils.FormatBranchAccount(account.Branch, account.AccountNumber),
		DisplayName:   account.GetDisplayName(),
	}
}

// PNG renders the account QR code as a PNG image of size x size pixels.
// A non-positive size falls back to 256.
func (s *AccountQRService) PNG(account models.Account, size int) ([]byte, error) {
	if size <= 0 {
		size = defaultQRSize
	}

	qr, err := qrcode.New(s.Payload(account), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(size)); err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}

	return buf.Bytes(), nil
}
