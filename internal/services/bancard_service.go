package services

import (
	"bytes"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/config"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/interfaces"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/models"
)

// BancardService Bancard vPOS 2.0 entegrasyonu
type BancardService struct {
	bancardRepo   interfaces.BancardRepositoryInterface
	walletService interfaces.WalletServiceInterface
	cfg           *config.Config
	baseURL       string
	httpClient    *http.Client
}

// NewBancardService yeni service oluşturur
func NewBancardService(bancardRepo interfaces.BancardRepositoryInterface, walletService interfaces.WalletServiceInterface, cfg *config.Config) *BancardService {
	return &BancardService{
		bancardRepo:   bancardRepo,
		walletService: walletService,
		cfg:           cfg,
		baseURL:       cfg.BancardBaseURL(),
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SingleBuyToken single_buy için MD5 token üretir.
// Hash sırası: private_key + shop_process_id + amount(iki ondalık) + currency
func (s *BancardService) SingleBuyToken(shopProcessID int64, amount float64, currency string) string {
	hashString := fmt.Sprintf("%s%d%.2f%s", s.cfg.BancardPrivateKey, shopProcessID, amount, currency)
	return fmt.Sprintf("%x", md5.Sum([]byte(hashString)))
}

// VerifyConfirmationToken confirm webhook token'ını doğrular.
// Hash sırası: private_key + shop_process_id + "confirm" + amount + currency
func (s *BancardService) VerifyConfirmationToken(receivedToken string, shopProcessID int64, amount float64, currency string) bool {
	hashString := fmt.Sprintf("%s%dconfirm%.2f%s", s.cfg.BancardPrivateKey, shopProcessID, amount, currency)
	expected := fmt.Sprintf("%x", md5.Sum([]byte(hashString)))
	return receivedToken == expected
}

// RollbackToken rollback isteği için MD5 token üretir
func (s *BancardService) RollbackToken(shopProcessID int64) string {
	hashString := fmt.Sprintf("%s%drollback0.00", s.cfg.BancardPrivateKey, shopProcessID)
	return fmt.Sprintf("%x", md5.Sum([]byte(hashString)))
}

// generateShopProcessID Bancard'ın istediği salt-numerik unique ID üretir
func generateShopProcessID() int64 {
	timePart := time.Now().UnixMilli() % 1000000
	randomPart := rand.Int63n(1000)
	return timePart*1000 + randomPart
}

// CreateLoadSession saldo yükleme için yeni bir vPOS ödeme oturumu başlatır
func (s *BancardService) CreateLoadSession(userID int, req *models.LoadBalanceRequest) (*models.LoadBalanceResponse, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("yükleme miktarı sıfırdan büyük olmalıdır")
	}

	if s.cfg.BancardPrivateKey == "" || s.cfg.BancardPublicKey == "" {
		return nil, fmt.Errorf("bancard anahtarları yapılandırılmamış")
	}

	shopProcessID := generateShopProcessID()
	currency := "PYG"
	token := s.SingleBuyToken(shopProcessID, req.Amount, currency)
	sessionID := fmt.Sprintf("balance-%s", uuid.NewString())

	// vPOS single_buy isteği
	payload := map[string]interface{}{
		"public_key": s.cfg.BancardPublicKey,
		"operation": map[string]interface{}{
			"token":           token,
			"shop_process_id": shopProcessID,
			"amount":          fmt.Sprintf("%.2f", req.Amount),
			"currency":        currency,
			"description":     fmt.Sprintf("Saldo yükleme - %s", sessionID),
			"return_url":      s.cfg.FrontendURL + "/carga-saldo-exitosa",
			"cancel_url":      s.cfg.FrontendURL + "/carga-saldo-cancelada",
		},
	}

	processID, err := s.postSingleBuy(payload)
	if err != nil {
		return nil, fmt.Errorf("bancard single_buy isteği başarısız: %w", err)
	}

	// Pending kaydı oluştur
	btx := &models.BancardTransaction{
		ShopProcessID:    shopProcessID,
		UserID:           userID,
		Amount:           req.Amount,
		Currency:         currency,
		Status:           models.BancardStatusPending,
		BalanceLoad:      true,
		PaymentSessionID: sessionID,
		ProcessID:        processID,
	}

	if _, err := s.bancardRepo.Create(btx); err != nil {
		return nil, err
	}

	log.Info().
		Int("user_id", userID).
		Int64("shop_process_id", shopProcessID).
		Float64("amount", req.Amount).
		Msg("💳 Saldo yükleme oturumu oluşturuldu")

	return &models.LoadBalanceResponse{
		Success:          true,
		ShopProcessID:    shopProcessID,
		PaymentSessionID: sessionID,
		Amount:           req.Amount,
		Currency:         currency,
		ProcessURL:       fmt.Sprintf("%s/checkout/new?process_id=%s", s.baseURL, processID),
		Message:          "Ödeme oturumu oluşturuldu",
	}, nil
}

// postSingleBuy vPOS single_buy endpoint'ini çağırır ve process_id döner
func (s *BancardService) postSingleBuy(payload map[string]interface{}) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("istek serialize edilemedi: %w", err)
	}

	url := s.baseURL + "/vpos/api/0.3/single_buy"
	resp, err := s.httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("bancard %d döndü", resp.StatusCode)
	}

	var result struct {
		Status    string `json:"status"`
		ProcessID string `json:"process_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("bancard yanıtı parse edilemedi: %w", err)
	}

	if result.ProcessID == "" {
		return "", fmt.Errorf("bancard process_id dönmedi (status: %s)", result.Status)
	}

	return result.ProcessID, nil
}

// ProcessConfirmation confirm webhook'unu işler.
// Onaylanan yükleme cüzdana load hareketi olarak eklenir; reddedilen
// sadece kayda işlenir. Aynı webhook'un tekrarı saldoyu iki kez yüklemez.
func (s *BancardService) ProcessConfirmation(req *models.BancardConfirmRequest) error {
	if req == nil || req.Operation == nil {
		return fmt.Errorf("geçersiz confirm payload'ı")
	}

	op := req.Operation

	// Saldo yükleme kaydını bul
	btx, err := s.bancardRepo.GetLoadByShopProcessID(op.ShopProcessID)
	if err != nil {
		return err
	}
	if btx == nil {
		log.Warn().Int64("shop_process_id", op.ShopProcessID).Msg("⚠️ Saldo yükleme kaydı bulunamadı")
		return nil
	}

	if btx.Status != models.BancardStatusPending {
		log.Warn().
			Int64("shop_process_id", op.ShopProcessID).
			Str("status", btx.Status).
			Msg("⚠️ Confirm webhook tekrarı, kayıt zaten sonuçlanmış")
		return nil
	}

	amount, err := strconv.ParseFloat(op.Amount, 64)
	if err != nil {
		return fmt.Errorf("geçersiz confirm miktarı: %s", op.Amount)
	}

	// Token doğrulama
	if !s.VerifyConfirmationToken(op.Token, op.ShopProcessID, amount, btx.Currency) {
		return fmt.Errorf("confirm token doğrulanamadı")
	}

	isSuccessful := op.Response == "S" && op.ResponseCode == "00"

	if !isSuccessful {
		if err := s.bancardRepo.UpdateConfirmation(btx.ID, models.BancardStatusRejected, op); err != nil {
			return err
		}

		log.Info().
			Int64("shop_process_id", op.ShopProcessID).
			Str("response_code", op.ResponseCode).
			Str("description", op.ResponseDescription).
			Msg("❌ Saldo yükleme reddedildi")
		return nil
	}

	if err := s.bancardRepo.UpdateConfirmation(btx.ID, models.BancardStatusApproved, op); err != nil {
		return err
	}

	// Cüzdana load hareketi ekle
	balance, err := s.walletService.AddTransaction(btx.UserID, &models.TransactionRequest{
		Type:        models.TxTypeLoad,
		Amount:      amount,
		Description: fmt.Sprintf("Bancard üzerinden saldo yükleme - İşlem %d", op.ShopProcessID),
		Reference:   strconv.FormatInt(op.ShopProcessID, 10),
		Status:      models.StatusCompleted,
		Metadata: map[string]interface{}{
			"bancard_transaction_id": btx.ID,
			"authorization_number":   op.AuthorizationNumber,
			"ticket_number":          op.TicketNumber,
		},
	})
	if err != nil {
		return fmt.Errorf("saldo yüklenemedi: %w", err)
	}

	log.Info().
		Int("user_id", btx.UserID).
		Float64("amount", amount).
		Float64("new_balance", balance.CurrentBalance).
		Msg("✅ Saldo başarıyla yüklendi")

	return nil
}

// PayWithBalance saldo ile ödeme yapar
func (s *BancardService) PayWithBalance(userID int, req *models.PayWithBalanceRequest) (*models.PayWithBalanceResponse, error) {
	if userID <= 0 || req.Amount <= 0 {
		return nil, fmt.Errorf("geçersiz ödeme verisi")
	}

	description := req.Description
	if description == "" {
		description = "Saldo ile ödeme"
	}

	reference := req.Reference
	if reference == "" {
		reference = req.SaleID
	}
	if reference == "" {
		reference = fmt.Sprintf("PAY-%d", time.Now().UnixMilli())
	}

	// Asıl yeterlilik kontrolü append sırasında kilit altında yapılır
	balance, err := s.walletService.AddTransaction(userID, &models.TransactionRequest{
		Type:        models.TxTypeSpend,
		Amount:      req.Amount,
		Description: description,
		Reference:   reference,
		Status:      models.StatusCompleted,
		Metadata: map[string]interface{}{
			"items":          req.Items,
			"customer_info":  req.CustomerInfo,
			"payment_method": "balance",
		},
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("user_id", userID).
		Float64("amount", req.Amount).
		Float64("remaining", balance.CurrentBalance).
		Msg("✅ Saldo ile ödeme işlendi")

	return &models.PayWithBalanceResponse{
		Success:          true,
		UserID:           userID,
		AmountPaid:       req.Amount,
		RemainingBalance: balance.CurrentBalance,
		TransactionRef:   reference,
		Message:          "Ödeme saldo ile başarıyla işlendi",
	}, nil
}
