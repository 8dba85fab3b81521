package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/google/uuid"

	"github.com/gatewaylabs/orbital-client/internal/adapters/orbital"
	"github.com/gatewaylabs/orbital-client/internal/adapters/secrets"
	"github.com/gatewaylabs/orbital-client/internal/config"
	"github.com/gatewaylabs/orbital-client/internal/domain"
	"github.com/gatewaylabs/orbital-client/internal/domain/ports"
	"github.com/gatewaylabs/orbital-client/pkg/observability"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.Logger)
	defer logger.Sync()

	logger.Info("Starting orbital gateway service",
		zap.String("environment", cfg.Gateway.Environment),
	)

	merchantID, bin, err := resolveMerchantCredentials(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to resolve merchant credentials", zap.Error(err))
	}

	transportCfg := orbital.DefaultTransportConfig(cfg.Gateway.Environment)
	if cfg.Gateway.BaseURL != "" {
		transportCfg.BaseURL = cfg.Gateway.BaseURL
	}
	transportCfg.Timeout = cfg.Gateway.Timeout
	transportCfg.MaxRetries = cfg.Gateway.MaxRetries

	transport := orbital.NewHTTPTransport(transportCfg, logger)

	client := orbital.NewClient(orbital.ClientConfig{
		MerchantID:   merchantID,
		BIN:          bin,
		TimeZoneCode: cfg.Gateway.TimeZoneCode,
		CurrencyCode: cfg.Gateway.CurrencyCode,
		Debug:        cfg.Gateway.Debug,
	}, transport, logger)

	// Metrics and health on the side port
	healthChecker := observability.NewHealthChecker(map[string]observability.CheckFunc{
		"gateway_config": func(ctx context.Context) error {
			if merchantID == "" {
				return fmt.Errorf("no merchant configured")
			}
			return nil
		},
	})
	metricsServer := observability.StartMetricsServer(fmt.Sprintf("%d", cfg.Server.MetricsPort), healthChecker)
	logger.Info("Metrics server started", zap.Int("port", cfg.Server.MetricsPort))

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/transactions", transactionHandler(client, logger))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  90 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := observability.ShutdownMetricsServer(metricsServer); err != nil {
		logger.Error("Metrics server shutdown failed", zap.Error(err))
	}
}

// initLogger builds the zap logger per configuration
func initLogger(cfg config.LoggerConfig) *zap.Logger {
	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// resolveMerchantCredentials loads the merchant ID and BIN from the
// configured secrets backend, falling back to plain env configuration
func resolveMerchantCredentials(cfg *config.Config, logger *zap.Logger) (merchantID, bin string, err error) {
	if cfg.Secrets.Backend == "" {
		return cfg.Gateway.MerchantID, cfg.Gateway.BIN, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var store ports.SecretManager
	switch cfg.Secrets.Backend {
	case "aws":
		store, err = secrets.NewAWSSecretStore(ctx, secrets.DefaultAWSSecretsManagerConfig(cfg.Secrets.AWSRegion), logger)
	case "vault":
		vaultCfg := secrets.DefaultVaultConfig(cfg.Secrets.VaultAddress)
		vaultCfg.AuthMethod = cfg.Secrets.VaultAuthMethod
		vaultCfg.Token = cfg.Secrets.VaultToken
		vaultCfg.RoleID = cfg.Secrets.VaultRoleID
		vaultCfg.SecretID = cfg.Secrets.VaultSecretID
		vaultCfg.Namespace = cfg.Secrets.VaultNamespace
		store, err = secrets.NewVaultSecretStore(ctx, vaultCfg, logger)
	case "local":
		store = secrets.NewLocalSecretStore(cfg.Secrets.LocalPath, logger)
	default:
		return "", "", fmt.Errorf("unknown secrets backend: %s", cfg.Secrets.Backend)
	}
	if err != nil {
		return "", "", err
	}

	creds, err := secrets.LoadMerchantCredentials(ctx, store, cfg.Secrets.CredentialsPath)
	if err != nil {
		return "", "", err
	}
	return creds.MerchantID, creds.BIN, nil
}

// transactionRequestBody is the JSON shape accepted by POST /v1/transactions
type transactionRequestBody struct {
	Action      string `json:"action"`
	OrderID     string `json:"order_id"`
	TraceNumber string `json:"trace_number"`
	CardNumber  string `json:"card_number"`
	ExpDate     string `json:"exp_date"`
	Amount      string `json:"amount"` // Decimal dollars, e.g. "29.99"
	Currency    string `json:"currency_code"`
	BIN         string `json:"bin"`
	TxRefNum    string `json:"tx_ref_num"`
	Comments    string `json:"comments"`
	BillTo      *struct {
		Name     string `json:"name"`
		Address1 string `json:"address1"`
		Address2 string `json:"address2"`
		City     string `json:"city"`
		State    string `json:"state"`
		Zip      string `json:"zip"`
		Country  string `json:"country"`
		Phone    string `json:"phone"`
	} `json:"bill_to"`
}

// transactionResponseBody is the JSON shape returned to callers
type transactionResponseBody struct {
	Success           bool   `json:"success"`
	AuthorizationCode string `json:"authorization_code,omitempty"`
	TransactionID     string `json:"transaction_id,omitempty"`
	AVSResponse       string `json:"avs_response,omitempty"`
	CVV2Response      string `json:"cvv2_response,omitempty"`
	StatusMessage     string `json:"status_message"`
}

func transactionHandler(client *orbital.Client, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			json.NewEncoder(w).Encode(map[string]string{"error": "method not allowed"})
			return
		}

		var body transactionRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid request body"})
			return
		}

		amountCents := int64(0)
		if body.Amount != "" {
			cents, err := domain.AmountCentsFromString(body.Amount)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
				return
			}
			amountCents = cents
		}

		orderID := body.OrderID
		if orderID == "" {
			orderID = uuid.NewString()
		}

		req := &domain.TransactionRequest{
			Action:       domain.Action(body.Action),
			OrderID:      orderID,
			TraceNumber:  body.TraceNumber,
			CardNumber:   body.CardNumber,
			ExpDate:      body.ExpDate,
			AmountCents:  amountCents,
			CurrencyCode: body.Currency,
			BIN:          body.BIN,
			TxRefNum:     body.TxRefNum,
			Comments:     body.Comments,
		}
		if body.BillTo != nil {
			req.BillTo = &domain.BillTo{
				Name:     body.BillTo.Name,
				Address1: body.BillTo.Address1,
				Address2: body.BillTo.Address2,
				City:     body.BillTo.City,
				State:    body.BillTo.State,
				Zip:      body.BillTo.Zip,
				Country:  body.BillTo.Country,
				Phone:    body.BillTo.Phone,
			}
		}

		done := observability.TrackInFlight()
		defer done()

		result, err := client.Submit(r.Context(), req)
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case domain.IsBuildError(err):
				status = http.StatusBadRequest
			case domain.IsGatewayError(err):
				status = http.StatusBadGateway
			}
			logger.Warn("Transaction submit failed",
				zap.String("order_id", orderID),
				zap.Error(err),
			)
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}

		json.NewEncoder(w).Encode(transactionResponseBody{
			Success:           result.Success,
			AuthorizationCode: result.AuthorizationCode,
			TransactionID:     result.TransactionID,
			AVSResponse:       result.AVSResponse,
			CVV2Response:      result.CVV2Response,
			StatusMessage:     result.StatusMessage,
		})
	}
}
