package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"criavo/pkg/money"
)

// PixProvider talks to the PSP's PIX API for deposit charges (cash-in) and
// creator transfers (cash-out). A fresh token is fetched per call, as the
// PSP recommends.
type PixProvider struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	WebhookBase  string
	client       *http.Client
}

func NewPixProvider(baseURL, clientID, clientSecret, webhookBase string) *PixProvider {
	return &PixProvider{
		BaseURL:      baseURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		WebhookBase:  webhookBase,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
}

type pixAuthReq struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type pixAuthResp struct {
	AccessToken string `json:"access_token"`
}

func (p *PixProvider) getToken(ctx context.Context) (string, error) {
	body, _ := json.Marshal(pixAuthReq{ClientID: p.ClientID, ClientSecret: p.ClientSecret})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/v1/oauth/token", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pix auth failed: %d", resp.StatusCode)
	}
	var out pixAuthResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

type pixChargeReq struct {
	Amount      string `json:"amount"` // decimal string, e.g. "150.00"
	Currency    string `json:"currency"`
	Description string `json:"description"`
	OrderID     string `json:"order_id"`
	PayerName   string `json:"payer_name"`
	PayerEmail  string `json:"payer_email"`
	CallbackURL string `json:"callback_url"`
	ExpiresIn   int    `json:"expires_in_seconds"`
}

type pixChargeResp struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	Status    string `json:"status"`
	QRCode    string `json:"qr_code"`
	ExpiresAt string `json:"expires_at"`
}

func (p *PixProvider) CreateCharge(ctx context.Context, req ChargeRequest) (*ChargeResponse, error) {
	token, err := p.getToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("pix auth: %w", err)
	}
	orderID := req.OrderID
	if orderID == "" {
		orderID = fmt.Sprintf("dep-%s", uuid.New().String())
	}
	callbackURL := req.CallbackURL
	if callbackURL == "" && p.WebhookBase != "" {
		callbackURL = p.WebhookBase + "/api/v1/webhooks/pix"
	}
	expiresIn := req.ExpiresIn
	if expiresIn == 0 {
		expiresIn = 30 * time.Minute
	}
	currency := req.Currency
	if currency == "" {
		currency = "BRL"
	}
	payload := pixChargeReq{
		Amount:      money.FromCents(req.AmountCents),
		Currency:    currency,
		Description: req.Description,
		OrderID:     orderID,
		PayerName:   req.PayerName,
		PayerEmail:  req.PayerEmail,
		CallbackURL: callbackURL,
		ExpiresIn:   int(expiresIn.Seconds()),
	}
	body, _ := json.Marshal(payload)
	apiReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/v1/pix/charges", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	apiReq.Header.Set("Content-Type", "application/json")
	apiReq.Header.Set("Authorization", "Bearer "+token)
	log.Printf("[PIX] POST %s/v1/pix/charges order_id=%s callback=%s", p.BaseURL, orderID, callbackURL)
	resp, err := p.client.Do(apiReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("[PIX] charge failed status=%d body=%s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("pix charge: %d", resp.StatusCode)
	}
	var out pixChargeResp
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, err
	}
	expiresAt, _ := time.Parse(time.RFC3339, out.ExpiresAt)
	return &ChargeResponse{
		Reference: out.ID,
		Status:    out.Status,
		QRCode:    out.QRCode,
		ExpiresAt: expiresAt,
	}, nil
}

type pixTransferReq struct {
	Amount      string `json:"amount"`
	PixKey      string `json:"pix_key"`
	Description string `json:"description"`
	OrderID     string `json:"order_id"`
	CallbackURL string `json:"callback_url"`
}

type pixTransferResp struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (p *PixProvider) CreateTransfer(ctx context.Context, req TransferRequest) (*TransferResponse, error) {
	token, err := p.getToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("pix auth: %w", err)
	}
	orderID := req.OrderID
	if orderID == "" {
		orderID = fmt.Sprintf("wd-%s", uuid.New().String())
	}
	callbackURL := req.CallbackURL
	if callbackURL == "" && p.WebhookBase != "" {
		callbackURL = p.WebhookBase + "/api/v1/webhooks/pix"
	}
	payload := pixTransferReq{
		Amount:      money.FromCents(req.AmountCents),
		PixKey:      req.PixKey,
		Description: req.Description,
		OrderID:     orderID,
		CallbackURL: callbackURL,
	}
	body, _ := json.Marshal(payload)
	apiReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/v1/pix/transfers", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	apiReq.Header.Set("Content-Type", "application/json")
	apiReq.Header.Set("Authorization", "Bearer "+token)
	log.Printf("[PIX] POST %s/v1/pix/transfers order_id=%s key=%s", p.BaseURL, orderID, req.PixKey)
	resp, err := p.client.Do(apiReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("[PIX] transfer failed status=%d body=%s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("pix transfer: %d", resp.StatusCode)
	}
	var out pixTransferResp
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, err
	}
	return &TransferResponse{Reference: out.ID, Status: out.Status}, nil
}
